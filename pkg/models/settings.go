package models

// Settings holds the institution letterhead and the authorizing signatory.
type Settings struct {
	Instansi   string `json:"instansi" yaml:"instansi"`
	Alamat     string `json:"alamat" yaml:"alamat"`
	Kota       string `json:"kota" yaml:"kota"`
	TtdNama    string `json:"ttdNama" yaml:"ttdNama"`
	TtdNIP     string `json:"ttdNip" yaml:"ttdNip"`
	TtdJabatan string `json:"ttdJabatan" yaml:"ttdJabatan"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		Instansi: "NAMA INSTANSI",
		Alamat:   "Alamat Instansi",
		Kota:     "Kota",
	}
}

// Stats summarises the stored records for the dashboard.
type Stats struct {
	TotalSPPD     int     `json:"totalSPPD"`
	TotalLumpsum  float64 `json:"totalLumpsum"`
	TotalKuitansi int     `json:"totalKuitansi"`
}
