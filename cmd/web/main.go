package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"

	"github.com/tomz197/voyager/internal/config"
	"github.com/tomz197/voyager/internal/logging"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

type pageData struct {
	SSHHost string
	SSHPort string
	FeedURL string
}

func main() {
	logging.SetSource("web")
	defer logging.Sync()

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	data := pageData{
		SSHHost: config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"),
		SSHPort: config.GetEnv("SSH_DISPLAY_PORT", ""),
		FeedURL: config.GetEnv("FEED_DISPLAY_URL", ""),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logging.Warnf("render landing page: %v", err)
		}
	})

	addr := net.JoinHostPort(host, port)
	logging.Infof("Starting web server on http://%s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logging.Fatalf("server error: %v", err)
	}
}
