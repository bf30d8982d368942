package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vaultsandbox/stego"
)

// app is the state shared by all subcommands, set during PersistentPreRunE.
type app struct {
	io         IOConfig
	configPath string
	logLevel   string

	cfg    Config
	logger zerolog.Logger
	codec  *stego.Codec
}

func newRootCmd(ioCfg IOConfig) *cobra.Command {
	a := &app{io: ioCfg, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "stegctl",
		Short: "Hide and recover text messages in media files",
		Long: `stegctl hides short text messages in the least-significant bits of
image, audio, video and document files.

Messages can be stored as plaintext, under a passphrase, or sealed to a
recipient's public key created with "stegctl keygen".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(ioCfg.Stdin)
	root.SetOut(ioCfg.Stdout)
	root.SetErr(ioCfg.Stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is ./stegctl.toml when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newCapacityCmd(a),
		newKeygenCmd(a),
	)
	return root
}

func (a *app) setup() error {
	if err := loadDotEnv(defaultEnvPath); err != nil {
		return err
	}

	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}

	getenv := a.io.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	applyEnv(&cfg, getenv)
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	logger, err := newLogger(a.io.Stderr, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	var opts []stego.Option
	if cfg.KDFIterations > 0 {
		opts = append(opts, stego.WithKDFIterations(cfg.KDFIterations))
	}
	if len(cfg.DocumentTypes) > 0 {
		opts = append(opts, stego.WithDocumentTypes(cfg.DocumentTypes...))
	}

	a.cfg = cfg
	a.logger = logger
	a.codec = stego.New(opts...)

	logger.Debug().
		Str("config", a.configPath).
		Str("output_dir", cfg.OutputDir).
		Int("kdf_iterations", cfg.KDFIterations).
		Msg("configuration loaded")
	return nil
}

func newEncodeCmd(a *app) *cobra.Command {
	var (
		message     string
		key         string
		keyFile     string
		recipient   string
		out         string
		contentType string
	)

	cmd := &cobra.Command{
		Use:   "encode <cover>",
		Short: "Hide a message in a cover file",
		Long: `Hide a message in a cover file and write the modified copy.

The message is read from stdin when --message is not given. Images are
written as PNG and audio as 16-bit WAVE; other covers keep their format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cover, err := stego.LoadCover(args[0], contentType)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("message") {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				message = strings.TrimRight(string(data), "\r\n")
			}

			var blob *stego.Blob
			if recipient != "" {
				if key != "" || keyFile != "" {
					return errors.New("--recipient cannot be combined with --key or --key-file")
				}
				publicKey, err := readKeyArg(recipient)
				if err != nil {
					return err
				}
				blob, err = a.codec.EncodeSealed(ctx, cover, message, publicKey)
				if err != nil {
					return err
				}
			} else {
				passphrase, err := resolveKey(a.cfg, key, keyFile)
				if err != nil {
					return err
				}
				if passphrase == "" {
					a.logger.Warn().Msg("no key given, message is hidden as plaintext")
				}
				blob, err = a.codec.Encode(ctx, cover, message, passphrase)
				if err != nil {
					return err
				}
			}

			path := out
			if path == "" {
				path, err = defaultOutputPath(args[0], a.cfg.OutputDir, blob.Extension())
				if err != nil {
					return err
				}
			}
			if err := os.WriteFile(path, blob.Data, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			a.logger.Info().
				Str("cover", args[0]).
				Str("content_type", cover.ContentType).
				Str("out", path).
				Int("bytes", len(blob.Data)).
				Msg("message hidden")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "message to hide (default reads stdin)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "passphrase (overrides "+envKey+")")
	cmd.Flags().StringVar(&keyFile, "key-file", "", "file containing the passphrase")
	cmd.Flags().StringVarP(&recipient, "recipient", "r", "", "recipient public key, base64 or a .pub file")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <cover>.stego.<ext>)")
	cmd.Flags().StringVarP(&contentType, "type", "t", "", "cover content type (default detected)")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var (
		key         string
		keyFile     string
		identity    string
		contentType string
	)

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Recover a hidden message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cover, err := stego.LoadCover(args[0], contentType)
			if err != nil {
				return err
			}

			var message string
			if identity != "" {
				secretKey, err := readKeyArg(identity)
				if err != nil {
					return err
				}
				kp, err := stego.KeypairFromSecretKey(secretKey)
				if err != nil {
					return err
				}
				message, err = a.codec.DecodeSealed(ctx, cover, kp)
				if err != nil {
					return err
				}
			} else {
				passphrase, err := resolveKey(a.cfg, key, keyFile)
				if err != nil {
					return err
				}
				message, err = a.codec.Decode(ctx, cover, passphrase)
				if err != nil {
					return err
				}
			}

			a.logger.Debug().
				Str("file", args[0]).
				Str("content_type", cover.ContentType).
				Int("length", len(message)).
				Msg("message recovered")
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "passphrase (overrides "+envKey+")")
	cmd.Flags().StringVar(&keyFile, "key-file", "", "file containing the passphrase")
	cmd.Flags().StringVarP(&identity, "identity", "i", "", "secret key, base64 or a .key file from keygen")
	cmd.Flags().StringVarP(&contentType, "type", "t", "", "file content type (default detected)")
	return cmd
}

func newCapacityCmd(a *app) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "capacity <cover>",
		Short: "Show how much text a cover can hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cover, err := stego.LoadCover(args[0], contentType)
			if err != nil {
				return err
			}

			bits, err := a.codec.Capacity(cmd.Context(), cover)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cover:      %s (%s)\n", args[0], cover.ContentType)
			fmt.Fprintf(w, "capacity:   %d bits\n", bits)
			fmt.Fprintf(w, "plaintext:  %d bytes\n", bits/8)
			fmt.Fprintf(w, "passphrase: %d bytes\n", max(0, bits-stego.PassphraseOverheadBits)/8)
			fmt.Fprintf(w, "sealed:     %d bytes\n", max(0, bits-stego.SealedOverheadBits)/8)
			return nil
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "", "cover content type (default detected)")
	return cmd
}

func newKeygenCmd(a *app) *cobra.Command {
	var (
		out   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create a keypair for sealed messages",
		Long: `Create an ML-KEM-768 keypair. The public key is written to <out>.pub
and shared with senders; the secret key is written to <out>.key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pubPath, keyPath := out+".pub", out+".key"
			if !force {
				for _, p := range []string{pubPath, keyPath} {
					if _, err := os.Stat(p); err == nil {
						return fmt.Errorf("%s already exists (use --force to overwrite)", p)
					}
				}
			}

			kp, err := a.codec.GenerateKeypair()
			if err != nil {
				return err
			}

			if err := os.WriteFile(keyPath, []byte(stego.EncodeKey(kp.SecretKey)+"\n"), 0o600); err != nil {
				return fmt.Errorf("write secret key: %w", err)
			}
			if err := os.WriteFile(pubPath, []byte(kp.PublicKeyB64+"\n"), 0o644); err != nil {
				return fmt.Errorf("write public key: %w", err)
			}

			a.logger.Info().Str("public", pubPath).Str("secret", keyPath).Msg("keypair created")
			fmt.Fprintln(cmd.OutOrStdout(), pubPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "stegctl", "path prefix for the key files")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing key files")
	return cmd
}

// readKeyArg reads a base64 key from a file, or takes arg itself as the key
// when no such file exists.
func readKeyArg(arg string) ([]byte, error) {
	if data, err := os.ReadFile(arg); err == nil {
		arg = string(data)
	}
	return stego.ParseKey(arg)
}

func defaultOutputPath(input, dir, ext string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".stego" + ext
	if dir == "" {
		return filepath.Join(filepath.Dir(input), name), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}
