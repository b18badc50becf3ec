package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rain/internal/imagefile"
	"github.com/vovakirdan/tui-rain/internal/platform/tui"
	"github.com/vovakirdan/tui-rain/internal/rain"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeImage    string
	flagServeSkip     bool
	flagServeNoRecord bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rain SSH server",
	Long: `Start an SSH server that shows the digital rain to every visitor.

Each SSH connection gets its own engine sized to its terminal. Sessions are
recorded in the sessions database (see 'rain sessions').

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rain/host_key

Examples:
  rain serve                           # Listen on :23234 with auto-generated key
  rain serve --ssh :2222               # Listen on port 2222
  rain serve --image face.png          # Reveal an image for every visitor
  rain serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeImage, "image", "", "Image to reveal for every session")
	serveCmd.Flags().BoolVar(&flagServeSkip, "skip-intro", false, "Start every session directly with the rain")
	serveCmd.Flags().BoolVar(&flagServeNoRecord, "no-store", false, "Do not record sessions")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, src, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger("rain-ssh", "")
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Debug("config loaded", "source", src)

	imagePath := flagServeImage
	if imagePath == "" {
		imagePath = cfg.Host.Image
	}
	var img *rain.Bitmap
	if imagePath != "" {
		img, _, err = imagefile.Load(imagePath)
		if err != nil {
			return fmt.Errorf("loading image: %w", err)
		}
	}

	dbPath := flagDBPath
	if flagServeNoRecord {
		dbPath = ""
	}

	serverCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      dbPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Rain:        cfg,
		Image:       img,
		ImageName:   imageLabel(imagePath),
		SkipIntro:   flagServeSkip,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting rain SSH server on %s\n", serverCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
