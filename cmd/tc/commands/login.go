package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/teamcity-go/teamcity-client/internal/constants"
	"github.com/teamcity-go/teamcity-client/pkg/tcclient"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// fileConfig is the persisted shape of ~/.teamcity/config.yml.
type fileConfig struct {
	Server string `yaml:"server"`
	Token  string `yaml:"token,omitempty"`
	User   string `yaml:"user,omitempty"`
	Guest  bool   `yaml:"guest,omitempty"`
}

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		server   string
		token    string
		username string
		password string
		guest    bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a TeamCity server",
		Long:  "Verify credentials against a TeamCity server and save them for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = viper.GetString("server")
			}

			if server == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Server URL: ")
				server, _ = reader.ReadString('\n')
				server = strings.TrimSpace(server)
			}

			if server == "" {
				return teamcity.ErrServerRequired
			}

			config := &teamcity.Config{
				ServerURL: server,
				Guest:     guest,
				// Credential checks should fail fast.
				RequestTimeout: constants.ShortHTTPTimeout,
			}

			switch {
			case token != "":
				config.Token = token
			case guest:
				// No credentials to collect
			default:
				if username == "" {
					reader := bufio.NewReader(os.Stdin)
					fmt.Print("Username: ")
					username, _ = reader.ReadString('\n')
					username = strings.TrimSpace(username)
				}

				if password == "" {
					fmt.Print("Password: ")
					bytePassword, err := term.ReadPassword(int(syscall.Stdin))
					if err != nil {
						return fmt.Errorf("failed to read password: %w", err)
					}
					password = string(bytePassword)
					fmt.Println()
				}

				config.Username = username
				config.Password = password
			}

			client, err := tcclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials with a cheap request
			ctx := context.Background()
			info, err := client.Server().Info(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to server: %w", err)
			}

			saved := fileConfig{
				Server: server,
				Token:  token,
				User:   username,
				Guest:  guest,
			}

			if err := saveFileConfig(saved); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to %s\n", server)
			fmt.Printf("Server version: %s\n", info.Version)

			if guest || (token == "" && username == "") {
				return nil
			}

			user, err := client.Users().Current(ctx)
			if err == nil {
				fmt.Printf("Logged in as %s\n", user.Username)
			}

			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&server, "server", "s", "", "TeamCity server URL")
	cmd.Flags().StringVarP(&token, "token", "t", "", "access token")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for basic authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for basic authentication")
	cmd.Flags().BoolVar(&guest, "guest", false, "use the server's guest login")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the TeamCity server",
		Long:  "Clear saved credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := saveFileConfig(fileConfig{Server: viper.GetString("server")}); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")
			return nil
		},
	}
}

func saveFileConfig(config fileConfig) error {
	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}

		path = filepath.Join(home, ".teamcity", "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Token may be stored; keep the file private.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
