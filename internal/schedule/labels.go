package schedule

import "strings"

// DefaultLanguage is used for unknown language tags.
const DefaultLanguage = "eng"

// Labels holds every fixed text of the schedule and drawing annotations.
type Labels struct {
	Language         string
	BendingSchedule  string
	Mark             string
	Dia              string
	LengthMM         string
	LengthBar        string
	NumberInElement  string
	Pcs              string
	TotalNumber      string
	TotalLength      string
	Comments         string
	Element          string
	Make             string
	TotalLengthDia   string
	LengthM          string
	Mass1m           string
	MassLength       string
	MassAccordingDia string
	Mass             string
	MassTotal        string
	SectionOverflow  string
}

var labelSets = map[string]Labels{
	"eng": {
		Language:         "eng",
		BendingSchedule:  "Bending schedule",
		Mark:             "Mark",
		Dia:              "Dia.",
		LengthMM:         "mm",
		LengthBar:        "Length",
		NumberInElement:  "No. in element",
		Pcs:              "pcs",
		TotalNumber:      "Total no.",
		TotalLength:      "Total length [m]",
		Comments:         "Comments",
		Element:          "Element:",
		Make:             "Make",
		TotalLengthDia:   "Total length by diameter",
		LengthM:          "m",
		Mass1m:           "Mass of 1 m",
		MassLength:       "kg/m",
		MassAccordingDia: "Mass by diameter",
		Mass:             "kg",
		MassTotal:        "Total mass",
		SectionOverflow:  "Bars do not fit the section, change the section or the bars!",
	},
	"pl": {
		Language:         "pl",
		BendingSchedule:  "Zestawienie stali",
		Mark:             "Nr",
		Dia:              "Średnica",
		LengthMM:         "mm",
		LengthBar:        "Długość",
		NumberInElement:  "Liczba w elemencie",
		Pcs:              "szt.",
		TotalNumber:      "Liczba łącznie",
		TotalLength:      "Długość całkowita [m]",
		Comments:         "Uwagi",
		Element:          "Element:",
		Make:             "Wykonać",
		TotalLengthDia:   "Długość wg średnic",
		LengthM:          "m",
		Mass1m:           "Masa 1 mb",
		MassLength:       "kg/mb",
		MassAccordingDia: "Masa wg średnic",
		Mass:             "kg",
		MassTotal:        "Masa całkowita",
		SectionOverflow:  "Niepoprawny rozstaw prętów, zmień przekrój belki lub prętów!",
	},
	"de": {
		Language:         "de",
		BendingSchedule:  "Stahlliste",
		Mark:             "Pos.",
		Dia:              "Durchm.",
		LengthMM:         "mm",
		LengthBar:        "Länge",
		NumberInElement:  "Anzahl je Bauteil",
		Pcs:              "Stk.",
		TotalNumber:      "Anzahl gesamt",
		TotalLength:      "Gesamtlänge [m]",
		Comments:         "Bemerkungen",
		Element:          "Bauteil:",
		Make:             "Herstellen",
		TotalLengthDia:   "Gesamtlänge je Durchmesser",
		LengthM:          "m",
		Mass1m:           "Gewicht je 1 m",
		MassLength:       "kg/m",
		MassAccordingDia: "Gewicht je Durchmesser",
		Mass:             "kg",
		MassTotal:        "Gesamtgewicht",
		SectionOverflow:  "Stäbe passen nicht in den Querschnitt, Querschnitt oder Stäbe ändern!",
	},
}

// LabelsFor returns the labels for a language tag, falling back to
// English for unknown tags.
func LabelsFor(lang string) Labels {
	if l, ok := labelSets[strings.ToLower(strings.TrimSpace(lang))]; ok {
		return l
	}
	return labelSets[DefaultLanguage]
}

// Languages returns the supported language tags.
func Languages() []string {
	return []string{"eng", "pl", "de"}
}
