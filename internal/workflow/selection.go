package workflow

import "github.com/Krestdev/Creapp-sub005/internal/entity"

// Quotation grouping and selection building. Pure reshaping over snapshots:
// a group is recomputed on every read and never mutated in place.

// QuotationGroup the join of one command request with all competing provider
// quotations against it. Derived, never persisted.
type QuotationGroup struct {
	CommandRequest entity.CommandRequest `json:"command_request"`
	Quotations     []entity.Quotation    `json:"quotations"`
	Providers      []entity.Provider     `json:"providers"`
}

// SubmissionElement the element ids answering one besoin, keyed by its label.
type SubmissionElement struct {
	BesoinID    string   `json:"besoin_id"`
	BesoinLabel string   `json:"besoin_label"`
	ElementIDs  []string `json:"element_ids"`
}

// SubmissionItem the per-quotation slice of a selection submission. One item
// per winning quotation, in first-encountered order.
type SubmissionItem struct {
	QuotationID string              `json:"quotation_id"`
	Elements    []SubmissionElement `json:"elements"`
}

// SelectionConflict more than one quotation carries a SELECTED element for
// the same besoin. Pre-existing data inconsistency the engine cannot repair:
// resolved first-match-wins and reported for logging, never raised.
type SelectionConflict struct {
	BesoinID        string `json:"besoin_id"`
	KeptProvider    string `json:"kept_provider"`
	DroppedProvider string `json:"dropped_provider"`
}

// GroupByCommandRequest partitions quotations by their command request and
// joins in the matching command request and the providers those quotations
// reference. A command request with zero quotations yields no group at all —
// never a group with an empty quotation list.
func GroupByCommandRequest(commandRequests []entity.CommandRequest, quotations []entity.Quotation, providers []entity.Provider) []QuotationGroup {
	byCR := make(map[string][]entity.Quotation)
	for _, q := range quotations {
		byCR[q.CommandRequestID] = append(byCR[q.CommandRequestID], q)
	}

	providerByID := make(map[string]entity.Provider, len(providers))
	for _, p := range providers {
		providerByID[p.ID] = p
	}

	var groups []QuotationGroup
	for _, cr := range commandRequests {
		quots := byCR[cr.ID]
		if len(quots) == 0 {
			continue
		}
		var grpProviders []entity.Provider
		seen := make(map[string]struct{})
		for _, q := range quots {
			if _, ok := seen[q.ProviderID]; ok {
				continue
			}
			seen[q.ProviderID] = struct{}{}
			if p, ok := providerByID[q.ProviderID]; ok {
				grpProviders = append(grpProviders, p)
			}
		}
		groups = append(groups, QuotationGroup{
			CommandRequest: cr,
			Quotations:     quots,
			Providers:      grpProviders,
		})
	}
	return groups
}

// Preselect recovers the already-recorded choice per besoin: the provider
// whose quotation carries a SELECTED element for that besoin. When several
// quotations improbably carry a SELECTED element for the same besoin, the
// first match in iteration order wins and the duplicate is reported as a
// conflict.
func Preselect(g QuotationGroup) (map[string]string, []SelectionConflict) {
	selection := make(map[string]string)
	var conflicts []SelectionConflict
	for _, besoin := range g.CommandRequest.Besoins {
		for _, q := range g.Quotations {
			matched := false
			for _, el := range q.Elements {
				if el.BesoinID == besoin.ID && el.Status == entity.ElementStatusSelected {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			if kept, ok := selection[besoin.ID]; ok {
				conflicts = append(conflicts, SelectionConflict{
					BesoinID:        besoin.ID,
					KeptProvider:    kept,
					DroppedProvider: q.ProviderID,
				})
				continue
			}
			selection[besoin.ID] = q.ProviderID
		}
	}
	return selection, conflicts
}

// HasSelection the submission gate: at least one besoin has a pick. Partial
// selection is deliberately allowed — a subset of besoins may be decided
// while the rest stay open.
func HasSelection(selection map[string]string) bool {
	for _, providerID := range selection {
		if providerID != "" {
			return true
		}
	}
	return false
}

// BuildSubmission converts per-besoin provider picks into the per-quotation
// submission payload. Iteration follows the group's besoin order, so output
// is deterministic: one item per winning quotation in first-encountered
// order, one element block per besoin, deduplicated by besoin label. Besoins
// whose pick resolves to no quotation, or to a quotation with no matching
// elements, are skipped. The payload never contains an empty element id list.
func BuildSubmission(g QuotationGroup, selection map[string]string) ([]SubmissionItem, error) {
	if !HasSelection(selection) {
		return nil, NewPreconditionError("build submission", "select at least one besoin")
	}

	quotationByProvider := make(map[string]entity.Quotation, len(g.Quotations))
	for _, q := range g.Quotations {
		if _, ok := quotationByProvider[q.ProviderID]; !ok {
			quotationByProvider[q.ProviderID] = q
		}
	}

	var items []SubmissionItem
	itemIndex := make(map[string]int)

	for _, besoin := range g.CommandRequest.Besoins {
		providerID := selection[besoin.ID]
		if providerID == "" {
			continue
		}
		q, ok := quotationByProvider[providerID]
		if !ok {
			continue
		}
		var elementIDs []string
		for _, el := range q.Elements {
			if el.BesoinID == besoin.ID {
				elementIDs = append(elementIDs, el.ID)
			}
		}
		if len(elementIDs) == 0 {
			continue
		}

		idx, ok := itemIndex[q.ID]
		if !ok {
			items = append(items, SubmissionItem{QuotationID: q.ID})
			idx = len(items) - 1
			itemIndex[q.ID] = idx
		}
		duplicate := false
		for _, el := range items[idx].Elements {
			if el.BesoinLabel == besoin.Label {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		items[idx].Elements = append(items[idx].Elements, SubmissionElement{
			BesoinID:    besoin.ID,
			BesoinLabel: besoin.Label,
			ElementIDs:  elementIDs,
		})
	}

	return items, nil
}
