package template

import (
	"math/rand"
	"sort"

	"github.com/freshprobe/freshprobe/errors"
)

// semanticKinds maps a {{semanticN:kind}} kind to its candidate values.
// Values only need to read as a plausible instance of the kind; they are
// never checked against real-world data.
var semanticKinds = map[string][]string{
	"person": {
		"James Okafor", "Maria Lindgren", "Wei Zhang", "Priya Raman",
		"Tomas Herrera", "Aisha Diallo", "Jan Novak", "Elena Petrova",
		"Daniel Kim", "Sofia Moreau", "Liam Gallagher", "Yuki Tanaka",
	},
	"first_name": {
		"James", "Maria", "Wei", "Priya", "Tomas", "Aisha",
		"Jan", "Elena", "Daniel", "Sofia", "Liam", "Yuki",
	},
	"last_name": {
		"Okafor", "Lindgren", "Zhang", "Raman", "Herrera", "Diallo",
		"Novak", "Petrova", "Kim", "Moreau", "Gallagher", "Tanaka",
	},
	"city": {
		"Lisbon", "Osaka", "Cusco", "Tallinn", "Windhoek", "Galway",
		"Brno", "Valparaiso", "Da Nang", "Tampere", "Leuven", "Dunedin",
	},
	"country": {
		"Portugal", "Japan", "Peru", "Estonia", "Namibia", "Ireland",
		"Czechia", "Chile", "Vietnam", "Finland", "Belgium", "New Zealand",
	},
	"department": {
		"Engineering", "Marketing", "Finance", "Operations",
		"Legal", "Procurement", "Research", "Support",
	},
	"company": {
		"Northwind Traders", "Acme Logistics", "Bluepeak Systems",
		"Harbor Analytics", "Sundial Foods", "Quarry & Sons",
		"Latchkey Software", "Meridian Freight",
	},
	"product": {
		"thermal flask", "desk lamp", "mechanical keyboard", "rain jacket",
		"espresso grinder", "trail backpack", "wall clock", "notebook",
	},
	"street": {
		"Alder Lane", "Birchwood Avenue", "Cobble Court", "Drummond Street",
		"Elmgrove Road", "Foxglove Way", "Granite Terrace", "Hawthorn Close",
	},
}

// pickSemantic draws a uniform-random value of the named kind.
func pickSemantic(kind string, rng *rand.Rand) (string, error) {
	values, ok := semanticKinds[kind]
	if !ok {
		return "", errors.NewArgument("unknown semantic kind %q (have: %v)", kind, SemanticKinds())
	}
	return values[rng.Intn(len(values))], nil
}

// SemanticKinds returns the sorted list of supported semantic kinds.
func SemanticKinds() []string {
	kinds := make([]string, 0, len(semanticKinds))
	for kind := range semanticKinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
