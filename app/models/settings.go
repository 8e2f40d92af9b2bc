package models

// SystemSettings is the singleton settings row (id fixed at 1) holding the
// institution identity and the three branding asset URLs.
type SystemSettings struct {
	ID              int64  `json:"id"`
	InstitutionName string `json:"institutionname"`
	NameInHeader    string `json:"nameinheader"`
	LogoInHeader    string `json:"logoinheader"`
	PngURL          string `json:"pngURL"`
	JpgURL          string `json:"jpgURL"`
	IcoURL          string `json:"icoURL"`
}
