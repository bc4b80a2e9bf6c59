package cli

import (
	"time"

	"github.com/spf13/viper"

	"pkg-provenance/internal/app"
	"pkg-provenance/internal/types"
)

func init() {
	viper.SetDefault("apt_cache", "apt-cache")
	viper.SetDefault("apt", "apt")
	viper.SetDefault("dpkg_deb", "dpkg-deb")
	viper.SetDefault("policy_timeout_sec", 10)
	viper.SetDefault("list_timeout_sec", 60)
	viper.SetDefault("deb_timeout_sec", 30)
	viper.SetDefault("workers", 4)
	viper.SetDefault("max_report_bytes", 1<<20)
	viper.SetDefault("format", string(types.OutputFormatText))
}

func newAppService() app.Service {
	return app.NewService(app.Config{
		AptCacheBinary: viper.GetString("apt_cache"),
		AptBinary:      viper.GetString("apt"),
		DpkgDebBinary:  viper.GetString("dpkg_deb"),
		PolicyTimeout:  seconds("policy_timeout_sec"),
		ListTimeout:    seconds("list_timeout_sec"),
		DebTimeout:     seconds("deb_timeout_sec"),
		Workers:        viper.GetInt("workers"),
		MaxReportBytes: viper.GetInt("max_report_bytes"),
		Pinned:         viper.GetStringSlice("pinned"),
		DebFolders:     viper.GetStringSlice("deb_folders"),
	})
}

func seconds(key string) time.Duration {
	return time.Duration(viper.GetInt(key)) * time.Second
}
