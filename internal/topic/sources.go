package topic

// Source is a recommended external data source for a research topic.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// baseSources lists topic-generic sources applicable to most countries.
var baseSources = map[string][]Source{
	"demographics": {
		{Name: "UN Population Division", URL: "https://population.un.org/wpp/"},
		{Name: "World Bank Data", URL: "https://data.worldbank.org/country/"},
		{Name: "UNICEF Data", URL: "https://data.unicef.org/country/"},
	},
	"agriculture": {
		{Name: "FAO Country Profiles", URL: "http://www.fao.org/countryprofiles/en/"},
		{Name: "IFAD Rural Development Report", URL: "https://www.ifad.org/en/web/knowledge/publications"},
		{Name: "World Bank Agriculture Data", URL: "https://data.worldbank.org/topic/agriculture-and-rural-development"},
	},
	"power": {
		{Name: "World Bank Sustainable Energy for All", URL: "https://datacatalog.worldbank.org/dataset/sustainable-energy-all"},
		{Name: "IRENA Renewable Energy Statistics", URL: "https://www.irena.org/Statistics"},
		{Name: "IEA Africa Energy Outlook", URL: "https://www.iea.org/reports/africa-energy-outlook-2019"},
	},
	"education": {
		{Name: "UNESCO Institute for Statistics", URL: "http://uis.unesco.org/"},
		{Name: "Global Partnership for Education", URL: "https://www.globalpartnership.org/where-we-work/"},
		{Name: "World Bank Education Statistics", URL: "https://datatopics.worldbank.org/education/"},
	},
	"livelihoods": {
		{Name: "ILO Country Profiles", URL: "https://www.ilo.org/global/statistics-and-databases/lang--en/index.htm"},
		{Name: "World Bank Poverty and Equity Data", URL: "https://datatopics.worldbank.org/poverty/"},
		{Name: "UNDP Human Development Reports", URL: "http://hdr.undp.org/en/countries/"},
	},
	"healthcare": {
		{Name: "WHO Country Profiles", URL: "https://www.who.int/countries/"},
		{Name: "Global Health Data Exchange", URL: "http://ghdx.healthdata.org/"},
		{Name: "UNICEF Health Data", URL: "https://data.unicef.org/topic/health/"},
	},
	"political": {
		{Name: "Bertelsmann Transformation Index", URL: "https://www.bti-project.org/en/home.html"},
		{Name: "Freedom House Reports", URL: "https://freedomhouse.org/countries/freedom-world/scores"},
		{Name: "International Crisis Group", URL: "https://www.crisisgroup.org/africa/"},
	},
	"food": {
		{Name: "WFP Hunger Map", URL: "https://www.wfp.org/hunger-map"},
		{Name: "FAO Food Security Data", URL: "http://www.fao.org/faostat/en/#home"},
		{Name: "FEWS NET", URL: "https://fews.net/"},
	},
	"leadership": {
		{Name: "Afrobarometer", URL: "https://www.afrobarometer.org/"},
		{Name: "Mo Ibrahim Foundation", URL: "https://mo.ibrahim.foundation/iiag"},
		{Name: "World Bank Governance Indicators", URL: "https://info.worldbank.org/governance/wgi/"},
	},
}

// countrySources maps a country to its national statistical office plus any
// topic-specific national sources.
type countryEntry struct {
	base    Source
	byTopic map[string]Source
}

var countrySources = map[string]countryEntry{
	"Kenya": {
		base: Source{Name: "Kenya National Bureau of Statistics", URL: "https://www.knbs.or.ke/"},
		byTopic: map[string]Source{
			"demographics": {Name: "Kenya Population and Housing Census", URL: "https://www.knbs.or.ke/census-2019/"},
			"agriculture":  {Name: "Kenya Agricultural Research Institute", URL: "https://www.kalro.org/"},
		},
	},
	"Tanzania": {
		base: Source{Name: "Tanzania National Bureau of Statistics", URL: "https://www.nbs.go.tz/"},
		byTopic: map[string]Source{
			"demographics": {Name: "Tanzania Population and Housing Census", URL: "https://www.nbs.go.tz/index.php/en/census-surveys/population-and-housing-census"},
		},
	},
	"Uganda": {
		base: Source{Name: "Uganda Bureau of Statistics", URL: "https://www.ubos.org/"},
	},
	"Ethiopia": {
		base: Source{Name: "Ethiopia Central Statistical Agency", URL: "https://www.statsethiopia.gov.et/"},
	},
	"Rwanda": {
		base: Source{Name: "National Institute of Statistics Rwanda", URL: "https://www.statistics.gov.rw/"},
	},
	"Nigeria": {
		base: Source{Name: "National Bureau of Statistics Nigeria", URL: "https://nigerianstat.gov.ng/"},
	},
	"Ghana": {
		base: Source{Name: "Ghana Statistical Services", URL: "https://www.statsghana.gov.gh/"},
	},
	"Senegal": {
		base: Source{Name: "Agence Nationale de la Statistique et de la Démographie", URL: "https://www.ansd.sn/"},
	},
}

// RecommendedSources returns the static ordered source list for a topic and
// country. Country-specific entries, when present, are prepended ahead of the
// topic-generic entries: the topic-specific national source first, then the
// national statistical office.
func RecommendedSources(topicID, country string) []Source {
	out := append([]Source(nil), baseSources[topicID]...)

	entry, ok := countrySources[country]
	if !ok {
		return out
	}
	if entry.base != (Source{}) {
		out = append([]Source{entry.base}, out...)
	}
	if s, ok := entry.byTopic[topicID]; ok {
		out = append([]Source{s}, out...)
	}
	return out
}
