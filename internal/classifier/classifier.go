// Package classifier assigns a default category to ledger entries from their
// free-text description. It is a convenience for data entry, not an
// invariant: callers may always override the label.
package classifier

import (
	"strings"

	"github.com/acolin/asso-ledger/internal/model"
)

// Keyword tables are matched in order; the first hit wins. Keywords are
// lowercase French treasury vocabulary, matched as substrings.
var keywordTable = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryCachet, []string{"cachet", "gage", "honoraire"}},
	{model.CategorySubvention, []string{"subvention", "drac", "sacem", "aide"}},
	{model.CategoryDon, []string{"don ", "donation", "mecenat", "mécénat"}},
	{model.CategoryBilletterie, []string{"billet", "entree", "entrée", "guichet"}},
	{model.CategoryMateriel, []string{"materiel", "matériel", "sono", "instrument", "corde"}},
	{model.CategoryTransport, []string{"transport", "train", "essence", "peage", "péage", "carburant"}},
	{model.CategoryLocation, []string{"location", "salle", "studio", "loyer"}},
	{model.CategoryFraisBancaires, []string{"frais bancaire", "agios", "commission", "banque"}},
}

type Keyword struct{}

func New() Keyword { return Keyword{} }

// Classify returns the best-guess category for a description and optional
// payee hint, falling back to CategoryAutre.
func (Keyword) Classify(description, payeeHint string) model.Category {
	haystack := strings.ToLower(description + " " + payeeHint)
	for _, row := range keywordTable {
		for _, kw := range row.keywords {
			if strings.Contains(haystack, kw) {
				return row.category
			}
		}
	}
	return model.CategoryAutre
}
