package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"InkBoard/internal/config"
	"InkBoard/internal/geom"
	"InkBoard/internal/ink"
	"InkBoard/internal/logging"
	inet "InkBoard/internal/net"
	"InkBoard/internal/state"
	"InkBoard/internal/ui"
)

const (
	CustomURLScheme = "inkboard://"
	// FindFlag joins the first host found on the local network.
	FindFlag    = "--find"
	findTimeout = 3 * time.Second
	dialTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.Setup(os.Stderr, cfg.Log.Level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if _, err := ink.Parse(cfg.Board.Color); err != nil {
		slog.Error("bad board color", "err", err)
		os.Exit(2)
	}

	args := os.Args
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], CustomURLScheme):
		runClient(cfg, args[1])
	case len(args) > 1 && args[1] == FindFlag:
		link, err := findHost(cfg.Network.Service)
		if err != nil {
			slog.Error("no host found", "err", err)
			os.Exit(1)
		}
		runClient(cfg, link)
	default:
		runHost(cfg)
	}
}

func newBoard(cfg config.Config) *state.Board {
	return state.NewBoard(geom.Engine{RadiusScale: cfg.Geometry.RadiusScale}, cfg.Board.Color)
}

func runHost(cfg config.Config) {
	log := logging.For("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	board := newBoard(cfg)
	log.Info("starting as host", "site", board.Site())
	hub := inet.NewHub()
	hub.OnOp = board.Apply
	hub.Snapshot = board.Ops
	board.OnLocalOp = hub.Broadcast

	window := ui.NewApp("InkBoard (host)", board, cfg)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Network.Port)
		if err := hub.ListenAndServe(ctx, addr); err != nil {
			log.Error("hub stopped", "err", err)
			window.SetStatus(fmt.Sprintf("Server stopped: %v", err))
		}
	}()

	if cfg.Network.Advertise {
		server, err := inet.Advertise(cfg.Network.Service, cfg.Network.Port)
		if err != nil {
			log.Warn("mDNS advertise failed", "err", err)
		} else {
			defer server.Shutdown()
		}
	}

	ip, err := inet.OutgoingIP()
	if err != nil {
		log.Warn("could not determine local IP", "err", err)
		ip = "127.0.0.1"
	}
	shareLink := inet.ShareLink(CustomURLScheme, ip, cfg.Network.Port)
	log.Info("share link", "link", shareLink)
	window.SetShareLink(shareLink)
	window.SetStatus("Hosting on port " + fmt.Sprint(cfg.Network.Port))

	window.Run()
	stop()
	hub.Close()
	board.Reset()
}

func runClient(cfg config.Config, link string) {
	log := logging.For("main")

	board := newBoard(cfg)
	log.Info("starting as client", "link", link, "site", board.Site())
	up := &uplink{}
	board.OnLocalOp = up.send

	window := ui.NewApp("InkBoard", board, cfg)
	go connectToHost(link, board, up, window)
	window.Run()
	up.close()
	board.Reset()
}

func connectToHost(link string, board *state.Board, up *uplink, window *ui.App) {
	log := logging.For("main")
	address := strings.TrimSuffix(strings.TrimPrefix(link, CustomURLScheme), "/")

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	client, err := inet.Dial(ctx, address)
	if err != nil {
		log.Error("connect failed", "addr", address, "err", err)
		window.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	up.attach(client)
	log.Info("connected", "addr", address, "local", client.LocalAddr())
	window.SetStatus("Connected to host as " + client.LocalAddr())

	err = client.Run(func(op state.Op) { board.Apply(op) })
	if err != nil {
		log.Warn("disconnected", "err", err)
		window.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
		return
	}
	window.SetStatus("Host closed the session")
}

// uplink forwards local ops to the host, holding them until the connection
// is up.
type uplink struct {
	mu      sync.Mutex
	client  *inet.Client
	pending []state.Op
}

func (u *uplink) send(op state.Op) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.client == nil {
		u.pending = append(u.pending, op)
		return
	}
	if err := u.client.Send(op); err != nil {
		logging.For("main").Warn("failed to send op", "op", op.ID, "err", err)
	}
}

func (u *uplink) attach(c *inet.Client) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, op := range u.pending {
		if err := c.Send(op); err != nil {
			logging.For("main").Warn("failed to send op", "op", op.ID, "err", err)
		}
	}
	u.pending = nil
	u.client = c
}

func (u *uplink) close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.client != nil {
		u.client.Close()
	}
}

func findHost(service string) (string, error) {
	var (
		once sync.Once
		link string
	)
	err := inet.Browse(service, findTimeout, func(addr string) {
		once.Do(func() { link = CustomURLScheme + addr })
	})
	if err != nil {
		return "", err
	}
	if link == "" {
		return "", fmt.Errorf("no %s host answered within %s", service, findTimeout)
	}
	return link, nil
}
