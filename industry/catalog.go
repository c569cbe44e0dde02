package industry

// Code identifies a supported business category.
type Code string

const (
	HVAC        Code = "HVAC"
	Plumbing    Code = "PLUMBING"
	AutoRepair  Code = "AUTO_REPAIR"
	Childcare   Code = "CHILDCARE"
	Electrician Code = "ELECTRICIAN"
	Generic     Code = "GENERIC"
)

type Entry struct {
	Code        Code   `json:"code" yaml:"code"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

var catalog = [...]Entry{
	{Code: HVAC, Label: "HVAC", Description: "Heating, ventilation and air conditioning installs and repairs"},
	{Code: Plumbing, Label: "Plumbing", Description: "Residential and commercial plumbing, drains and water heaters"},
	{Code: AutoRepair, Label: "Auto Repair", Description: "Mechanics, body shops and vehicle servicing"},
	{Code: Childcare, Label: "Childcare", Description: "Daycare centers, preschools and after-school programs"},
	{Code: Electrician, Label: "Electrician", Description: "Electrical wiring, panels and lighting work"},
	{Code: Generic, Label: "Other", Description: "Any other service business"},
}

// List returns the catalog in display order. The slice is a fresh copy.
func List() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog[:])
	return out
}

func Lookup(code Code) (Entry, bool) {
	for _, e := range catalog {
		if e.Code == code {
			return e, true
		}
	}
	return Entry{}, false
}

// Codes lists the raw code strings, in catalog order.
func Codes() []string {
	out := make([]string, len(catalog))
	for i, e := range catalog {
		out[i] = string(e.Code)
	}
	return out
}

// Resolve maps a stored or submitted value onto the catalog, falling back to Generic.
func Resolve(raw string) Code {
	if e, ok := Lookup(Code(raw)); ok {
		return e.Code
	}
	return Generic
}
