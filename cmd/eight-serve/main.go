// Command eight-serve exposes a key-value store over the HTTP/WebSocket
// gateway, optionally installable as a host service via
// github.com/kardianos/service.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	logging "github.com/ipfs/go-log"
	"github.com/kardianos/service"
	"github.com/meppu/eight/gateway"
	"github.com/meppu/eight/internal/command"
	"github.com/meppu/eight/internal/netbind"
	"github.com/meppu/eight/perm"
	"github.com/meppu/eight/server"
	"github.com/meppu/eight/storage"
)

var log = logging.Logger("eight/serve")

type settings struct {
	directory  string
	permission int
	port       uint
	bind       string
	multiaddr  string
	serviceCmd string
}

func (s *settings) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&s.directory, "directory", "", "path to create storage; memory-backed store if omitted")
	fs.IntVar(&s.permission, "permission", int(perm.Owner), "server permission tier: guest (0), admin (1), owner (2)")
	fs.UintVar(&s.port, "port", 8080, "port to expose")
	fs.StringVar(&s.bind, "bind", "0.0.0.0", "IPv4 address to listen on")
	fs.StringVar(&s.multiaddr, "multiaddr", "", "bind address as a multiaddr, overriding -bind/-port")
	fs.StringVar(&s.serviceCmd, "service", "", "host service action: install, uninstall, start, stop (omit to run in the foreground)")
}

func main() {
	cmd := command.MakeCommand[settings](
		"eight-serve",
		"Expose a key-value store over HTTP and WebSocket, optionally as a host service.",
		run,
	)

	if err := cmd.Execute(context.Background(), os.Args[1:]...); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, s *settings) error {
	permission, ok := perm.Parse(s.permission)
	if !ok {
		return fmt.Errorf("invalid permission value %d; must be 0, 1, or 2", s.permission)
	}

	bindAddr := s.multiaddr
	if bindAddr == "" {
		bindAddr = netbind.FromHostPort(s.bind, uint16(s.port))
	}

	prog := &program{
		directory:  s.directory,
		memoryOnly: s.directory == "",
		permission: permission,
		bindAddr:   bindAddr,
	}

	if s.serviceCmd == "" {
		return prog.runForeground()
	}

	svcConfig := &service.Config{
		Name:        "eight-serve",
		DisplayName: "Eight key-value server",
		Description: "Serves an embeddable key-value store over HTTP and WebSocket.",
	}

	svc, err := service.New(prog, svcConfig)
	if err != nil {
		return err
	}

	return service.Control(svc, s.serviceCmd)
}

// program adapts the dispatcher + gateway pair to kardianos/service's
// Interface.
type program struct {
	directory  string
	memoryOnly bool
	permission perm.Permission
	bindAddr   string

	listener interface{ Close() error }
}

func (p *program) Start(s service.Service) error {
	go p.run()
	return nil
}

func (p *program) Stop(s service.Service) error {
	if p.listener != nil {
		return p.listener.Close()
	}
	return nil
}

func (p *program) runForeground() error {
	return p.run()
}

func (p *program) run() error {
	var store storage.Storage
	if p.memoryOnly {
		store = storage.NewMemory()
	} else {
		store = storage.NewFilesystem(p.directory)
	}

	srv := server.New(store)
	srv.SetPermission(p.permission)
	srv.Start()

	listener, err := netbind.Listen(p.bindAddr)
	if err != nil {
		log.Errorf("failed to bind %s: %v", p.bindAddr, err)
		return err
	}
	p.listener = listener

	router := gateway.NewRouter(srv)
	log.Infof("listening on %s", p.bindAddr)
	return http.Serve(listener, router)
}
