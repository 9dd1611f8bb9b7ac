package ingest

import "context"

func init() {
	Register(&censusAdapter{})
}

// censusAdapter serves the manually curated census of savings banks for
// countries whose member lists were enumerated from national association
// directories rather than scraped. The table is intentionally static:
// entries were verified by hand and only change through code review.
type censusAdapter struct{}

func (a *censusAdapter) ID() string          { return "census-static" }
func (a *censusAdapter) Description() string { return "curated national-association census" }
func (a *censusAdapter) DefaultURL() string  { return "" }
func (a *censusAdapter) License() string     { return "curated" }

func (a *censusAdapter) Fetch(_ context.Context, _ string) ([]Candidate, error) {
	out := make([]Candidate, len(censusBanks))
	copy(out, censusBanks)
	return out, nil
}

// censusBanks is the curated list. Grouped by country; each group names
// its association source in the leading comment.
var censusBanks = []Candidate{
	// Norway: SpareBank 1 Alliance (sparebank1.no member list).
	{Name: "SpareBank 1 Ringerike Hadeland", Country: "Norway", CountryCode: "NO", City: "Honefoss", ParentGroup: "SpareBank 1 Alliance", Website: "https://www.sparebank1.no/ringerike-hadeland"},
	{Name: "SpareBank 1 Hallingdal Valdres", Country: "Norway", CountryCode: "NO", City: "Gol", ParentGroup: "SpareBank 1 Alliance", Website: "https://www.sparebank1.no/hallingdal-valdres"},
	{Name: "SpareBank 1 Modum", Country: "Norway", CountryCode: "NO", City: "Vikersund", ParentGroup: "SpareBank 1 Alliance", Website: "https://www.sparebank1.no/modum"},
	{Name: "SpareBank 1 Gudbrandsdal", Country: "Norway", CountryCode: "NO", City: "Lillehammer", ParentGroup: "SpareBank 1 Alliance", Website: "https://www.sparebank1.no/gudbrandsdal"},
	{Name: "SpareBank 1 Helgeland", Country: "Norway", CountryCode: "NO", City: "Mo i Rana", ParentGroup: "SpareBank 1 Alliance", Website: "https://www.sparebank1.no/helgeland"},
	// Norway: Eika Gruppen members (eika.no).
	{Name: "Aurskog Sparebank", Country: "Norway", CountryCode: "NO", City: "Aurskog", ParentGroup: "Eika Gruppen", Website: "https://www.aurskog-sparebank.no"},
	{Name: "Jaeren Sparebank", Country: "Norway", CountryCode: "NO", City: "Bryne", ParentGroup: "Eika Gruppen", Website: "https://www.jaerensparebank.no"},
	{Name: "Melhus Sparebank", Country: "Norway", CountryCode: "NO", City: "Melhus", ParentGroup: "Eika Gruppen", Website: "https://www.melhussparebank.no"},
	{Name: "Sandnes Sparebank", Country: "Norway", CountryCode: "NO", City: "Sandnes", ParentGroup: "Eika Gruppen", Website: "https://www.sandnes-sparebank.no"},
	{Name: "Totens Sparebank", Country: "Norway", CountryCode: "NO", City: "Lena", ParentGroup: "Eika Gruppen", Website: "https://www.totenssparebank.no"},
	// Norway: independents (sparebankforeningen.no).
	{Name: "Helgeland Sparebank", Country: "Norway", CountryCode: "NO", City: "Mosjoen", Website: "https://www.helgeland-sparebank.no"},
	{Name: "Sparebanken Sogn og Fjordane", Country: "Norway", CountryCode: "NO", City: "Forde", Website: "https://www.ssf.no"},
	{Name: "Sparebanken More", Country: "Norway", CountryCode: "NO", City: "Aalesund", Website: "https://www.sbmore.no"},
	{Name: "Fana Sparebank", Country: "Norway", CountryCode: "NO", City: "Bergen", Website: "https://www.fana-sparebank.no"},
	// Austria: Sparkassenverband members (sparkassenverband.at).
	{Name: "Karntner Sparkasse", Country: "Austria", CountryCode: "AT", City: "Klagenfurt", ParentGroup: "Erste Group / Sparkassen", Website: "https://www.sparkasse.at/kaernten"},
	{Name: "Sparkasse der Stadt Amstetten", Country: "Austria", CountryCode: "AT", City: "Amstetten", ParentGroup: "Erste Group / Sparkassen", Website: "https://www.sparkasse.at/amstetten"},
	{Name: "Steiermarkische Sparkasse", Country: "Austria", CountryCode: "AT", City: "Graz", ParentGroup: "Erste Group / Sparkassen", Website: "https://www.sparkasse.at/steiermaerkische"},
	{Name: "Tiroler Sparkasse", Country: "Austria", CountryCode: "AT", City: "Innsbruck", ParentGroup: "Erste Group / Sparkassen", Website: "https://www.sparkasse.at/tirol"},
	{Name: "Salzburger Sparkasse", Country: "Austria", CountryCode: "AT", City: "Salzburg", ParentGroup: "Erste Group / Sparkassen", Website: "https://www.salzburger-sparkasse.at"},
	// Finland: Saastopankki group (saastopankki.fi).
	{Name: "Aito Saastopankki", Country: "Finland", CountryCode: "FI", City: "Tampere", ParentGroup: "Savings Banks Group Finland", Website: "https://www.saastopankki.fi/aito"},
	{Name: "Helmi Saastopankki", Country: "Finland", CountryCode: "FI", City: "Helsinki", ParentGroup: "Savings Banks Group Finland", Website: "https://www.saastopankki.fi/helmi"},
	{Name: "Someron Saastopankki", Country: "Finland", CountryCode: "FI", City: "Somero", ParentGroup: "Savings Banks Group Finland", Website: "https://www.saastopankki.fi/somero"},
	// Denmark: independent savings banks (lokalebanker.dk).
	{Name: "Middelfart Sparekasse", Country: "Denmark", CountryCode: "DK", City: "Middelfart", Website: "https://www.midspar.dk"},
	{Name: "Sparekassen Kronjylland", Country: "Denmark", CountryCode: "DK", City: "Randers", Website: "https://www.sparkron.dk"},
	{Name: "Sparekassen Danmark", Country: "Denmark", CountryCode: "DK", City: "Vraa", Website: "https://www.spardanmark.dk"},
	// Italy: casse di risparmio (acri.it).
	{Name: "Cassa di Risparmio di Asti", Country: "Italy", CountryCode: "IT", City: "Asti", Website: "https://www.bancadiasti.it"},
	{Name: "Cassa di Risparmio di Bolzano", Country: "Italy", CountryCode: "IT", City: "Bolzano", Website: "https://www.sparkasse.it"},
	{Name: "Cassa di Risparmio di Fermo", Country: "Italy", CountryCode: "IT", City: "Fermo", Website: "https://www.carifermo.it"},
}
