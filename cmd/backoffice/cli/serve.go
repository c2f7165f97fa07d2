package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/womni/backoffice/internal/auth"
	"github.com/womni/backoffice/internal/region"
	"github.com/womni/backoffice/internal/server"
	"github.com/womni/backoffice/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the backoffice API server",
		Long:  "Start the HTTP server that exposes the employee and account administration API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging, CORS *)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, dev bool) error {
	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// The signing secret is required; refusing to start beats serving
	// requests that can never authenticate.
	codec, err := auth.NewTokenCodec(viper.GetString("auth.secret"))
	if err != nil {
		return fmt.Errorf("auth configuration: %w", err)
	}

	dsn := viper.GetString("db.dsn")
	if dsn == "" {
		return fmt.Errorf("db.dsn is required (e.g. user:pass@tcp(host:3306)/womni?parseTime=true)")
	}
	st, err := store.New(viper.GetString("db.driver"), dsn)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()
	logger.Info("store initialized", "driver", viper.GetString("db.driver"))

	regions := region.NewDirectory(
		viper.GetStringMapString("regions.backends"),
		viper.GetString("regions.default"),
	)

	resolver := auth.NewResolver(st, codec, regions)

	cfg := server.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	if origins := viper.GetStringSlice("server.cors_origins"); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	if dev {
		cfg.CORSOrigins = []string{"*"}
	}
	if ttl := viper.GetString("auth.token_ttl"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("parse auth.token_ttl: %w", err)
		}
		cfg.TokenTTL = d
	}

	srv := server.New(cfg, st, codec, resolver, logger)

	fmt.Printf("→ Womni backoffice API\n")
	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	fmt.Printf("→ Health: http://%s:%d/healthz\n", host, port)

	return srv.ListenAndServe()
}
