package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/gridbill/gridbill/internal/server"
)

var (
	serveAddr      string
	serveUsersFile string
	serveJWTSecret string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the projection, tariff, and registration API over HTTP.

The users file is a JSON store managed by the registration endpoints and
created on first signup. The JWT secret signs session tokens; set it to
a stable value so tokens survive restarts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.NewServer(server.Options{
			UsersFile: serveUsersFile,
			JWTSecret: serveJWTSecret,
			Debug:     flagDebug,
		})
		log.Printf("gridbill API listening on %s", serveAddr)
		return srv.Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveUsersFile, "users-file", "users.json", "Path to the JSON user store")
	serveCmd.Flags().StringVar(&serveJWTSecret, "jwt-secret", "", "Secret for signing session tokens (random if empty)")
	rootCmd.AddCommand(serveCmd)
}
