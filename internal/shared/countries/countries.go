// Package countries lists the markets the portal sells into and the
// institutional care levels used on the registration forms.
package countries

import "strings"

type Country struct {
	Name string
	Code string
}

var LatinAmerica = []Country{
	{Name: "Argentina", Code: "AR"},
	{Name: "Bolivia", Code: "BO"},
	{Name: "Brasil", Code: "BR"},
	{Name: "Chile", Code: "CL"},
	{Name: "Colombia", Code: "CO"},
	{Name: "Costa Rica", Code: "CR"},
	{Name: "Cuba", Code: "CU"},
	{Name: "Ecuador", Code: "EC"},
	{Name: "El Salvador", Code: "SV"},
	{Name: "Guatemala", Code: "GT"},
	{Name: "Honduras", Code: "HN"},
	{Name: "México", Code: "MX"},
	{Name: "Nicaragua", Code: "NI"},
	{Name: "Panamá", Code: "PA"},
	{Name: "Paraguay", Code: "PY"},
	{Name: "Perú", Code: "PE"},
	{Name: "República Dominicana", Code: "DO"},
	{Name: "Uruguay", Code: "UY"},
	{Name: "Venezuela", Code: "VE"},
}

var byCode = func() map[string]string {
	m := make(map[string]string, len(LatinAmerica))
	for _, c := range LatinAmerica {
		m[c.Code] = c.Name
	}
	return m
}()

// GetCountryNameByCode returns the display name for an ISO 3166-1 alpha-2
// code. Unknown or empty codes report false.
func GetCountryNameByCode(code string) (string, bool) {
	name, ok := byCode[strings.ToUpper(strings.TrimSpace(code))]
	return name, ok
}

// NameOr is GetCountryNameByCode with a fallback for templates.
func NameOr(code, fallback string) string {
	if name, ok := GetCountryNameByCode(code); ok {
		return name
	}
	return fallback
}

type CareLevel struct {
	Value int
	Roman string
}

var CareLevels = []CareLevel{
	{Value: 1, Roman: "I"},
	{Value: 2, Roman: "II"},
	{Value: 3, Roman: "III"},
	{Value: 4, Roman: "IV"},
}

// IsCareLevel reports whether s is one of the roman care levels.
func IsCareLevel(s string) bool {
	for _, l := range CareLevels {
		if l.Roman == s {
			return true
		}
	}
	return false
}
