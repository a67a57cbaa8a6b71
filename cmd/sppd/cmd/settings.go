package cmd

import (
	"log/slog"

	"github.com/shunichi-ikebuchi/sppd/pkg/config"
	"github.com/shunichi-ikebuchi/sppd/pkg/models"
	"github.com/shunichi-ikebuchi/sppd/pkg/validation"
	"github.com/spf13/cobra"
)

var settingsInput models.Settings

// settingsCmd groups the institution settings commands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage the institution letterhead and signatory",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings as JSON",
	Args:  cobra.NoArgs,
	Run:   runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:     "set",
	Short:   "Change the given settings",
	Example: `  sppd settings set --instansi "DINAS PERHUBUNGAN" --kota Bandung`,
	Args:    cobra.NoArgs,
	Run:     runSettingsSet,
}

var settingsLoadCmd = &cobra.Command{
	Use:   "load <profile.yaml>",
	Short: "Replace the settings with an institution profile file",
	Long: `Replace the settings with an institution profile file:

  settings:
    instansi: DINAS PERHUBUNGAN
    alamat: Jl. Merdeka No. 1
    kota: Bandung
    ttdNama: Ir. Ahmad Yani
    ttdNip: "196801011990031001"
    ttdJabatan: Kepala Dinas`,
	Args: cobra.ExactArgs(1),
	Run:  runSettingsLoad,
}

func init() {
	f := settingsSetCmd.Flags()
	f.StringVar(&settingsInput.Instansi, "instansi", "", "Institution name")
	f.StringVar(&settingsInput.Alamat, "alamat", "", "Institution address")
	f.StringVar(&settingsInput.Kota, "kota", "", "City printed beside signatures")
	f.StringVar(&settingsInput.TtdNama, "ttd-nama", "", "Signatory name")
	f.StringVar(&settingsInput.TtdNIP, "ttd-nip", "", "Signatory ID number")
	f.StringVar(&settingsInput.TtdJabatan, "ttd-jabatan", "", "Signatory position")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsLoadCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	printJSON(s.repo.GetSettings())
}

func runSettingsSet(cmd *cobra.Command, args []string) {
	s := openSession()
	defer s.Close()

	settings := s.repo.GetSettings()
	flags := cmd.Flags()
	if flags.Changed("instansi") {
		settings.Instansi = settingsInput.Instansi
	}
	if flags.Changed("alamat") {
		settings.Alamat = settingsInput.Alamat
	}
	if flags.Changed("kota") {
		settings.Kota = settingsInput.Kota
	}
	if flags.Changed("ttd-nama") {
		settings.TtdNama = settingsInput.TtdNama
	}
	if flags.Changed("ttd-nip") {
		settings.TtdNIP = settingsInput.TtdNIP
	}
	if flags.Changed("ttd-jabatan") {
		settings.TtdJabatan = settingsInput.TtdJabatan
	}
	exitOnError(validation.Settings(settings), "invalid settings")

	exitOnError(s.repo.SaveSettings(settings), "failed to save settings")
	slog.Info("Settings saved", "instansi", settings.Instansi)
}

func runSettingsLoad(cmd *cobra.Command, args []string) {
	profile, err := config.LoadProfile(args[0])
	exitOnError(err, "failed to load profile")
	exitOnError(validation.Settings(profile.Settings), "invalid profile")

	s := openSession()
	defer s.Close()

	exitOnError(s.repo.SaveSettings(profile.Settings), "failed to save settings")
	slog.Info("Settings loaded", "path", args[0], "instansi", profile.Settings.Instansi)
}
