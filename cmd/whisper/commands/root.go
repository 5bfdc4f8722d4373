package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/memetcircus/whisper-core/internal/app"
)

var (
	home       string
	passphrase string
	configPath string
	verbose    bool

	wireCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "whisper",
		Short: "End-to-end encrypted messaging over any out-of-band channel",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".whisper")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if configPath == "" {
				configPath = filepath.Join(home, "config.yaml")
			}
			pol, err := app.LoadPolicyFile(configPath)
			if err != nil {
				return err
			}

			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()

			wireCtx, err = app.NewWire(app.Config{
				Home:       home,
				Passphrase: passphrase,
				Policy:     pol,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			// One retention pass per invocation keeps the replay database
			// bounded without a resident daemon.
			if err := wireCtx.Replay.Cleanup(); err != nil {
				logger.Warn().Err(err).Msg("replay cleanup failed")
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wireCtx != nil {
				return wireCtx.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.whisper)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting identity keys")
	root.PersistentFlags().StringVar(&configPath, "config", "", "policy config file (default <home>/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		initCmd(),
		rotateCmd(),
		identityCmd(),
		fingerprintCmd(),
		contactCmd(),
		encryptCmd(),
		decryptCmd(),
		detectCmd(),
	)
	return root.Execute()
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
