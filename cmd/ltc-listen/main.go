// ABOUTME: Entry point for the LTCSync listener
// ABOUTME: Finds a broadcast over mDNS or by address and prints received frames
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ltcsync/ltcsync-go/pkg/discovery"
	"github.com/ltcsync/ltcsync-go/pkg/protocol"
)

var (
	serverAddr = flag.String("server", "", "Broadcast address host:port (skip mDNS)")
	path       = flag.String("path", discovery.DefaultPath, "WebSocket path")
	name       = flag.String("name", "", "Listener name (default: hostname-ltc-listen)")
	encoding   = flag.String("encoding", "json", "Frame encoding: json or msgpack")
	timeout    = flag.Duration("timeout", 10*time.Second, "How long to browse for a broadcast")
	logFile    = flag.String("log-file", "", "Also write logs to this file")
	raw        = flag.Bool("raw", false, "Print raw frame bytes after each timecode")
)

func main() {
	flag.Parse()

	logOut := io.Writer(os.Stderr)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stderr, f)
	}
	log.SetOutput(logOut)

	enc, err := protocol.ParseEncoding(*encoding)
	if err != nil {
		log.Fatalf("%v", err)
	}

	listenerName := *name
	if listenerName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		listenerName = fmt.Sprintf("%s-ltc-listen", hostname)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, wsPath := *serverAddr, *path
	if addr == "" {
		log.Printf("Browsing for %s services...", discovery.ServiceType)
		disc := discovery.NewManager(discovery.Config{ServiceName: listenerName})
		browseCtx, cancel := context.WithTimeout(ctx, *timeout)
		server, err := disc.First(browseCtx)
		cancel()
		disc.Stop()
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		addr, wsPath = server.Addr(), server.Path
		log.Printf("Using %s at %s", server.Name, addr)
	}

	client := protocol.NewClient(protocol.Config{
		ServerAddr: addr,
		Path:       wsPath,
		Name:       listenerName,
		Encoding:   enc,
	})
	if err := client.Connect(); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	hello := client.ServerHello()
	log.Printf("Listening to %s: %s at %.2f fps from %s", hello.Name, hello.Standard, hello.FPS, hello.Source)

	for {
		select {
		case frame, ok := <-client.Frames:
			if !ok {
				select {
				case end := <-client.End:
					log.Printf("Stream ended: %s", end.Reason)
				default:
					log.Printf("Connection lost")
				}
				return
			}
			printFrame(frame)
		case <-ctx.Done():
			if err := client.SendGoodbye("interrupted"); err != nil {
				log.Printf("Failed to say goodbye: %v", err)
			}
			return
		}
	}
}

func printFrame(f protocol.TimecodeFrame) {
	line := fmt.Sprintf("%8d %s", f.Sequence, f.Timecode)
	if f.Date != nil {
		line = fmt.Sprintf("%8d %04d-%02d-%02d %s %s", f.Sequence, f.Date.Year, f.Date.Month, f.Date.Day, f.Date.Timezone, f.Timecode)
	}
	line += fmt.Sprintf(" | %-8s %5.2fx %6.1f dB", f.Lock, f.Speed, f.Volume)
	if f.Reverse {
		line += "  R"
	}
	if *raw {
		line += " " + f.Raw
	}
	fmt.Println(line)
}
