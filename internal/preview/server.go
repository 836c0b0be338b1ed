package preview

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nathanielng/qdev/internal/layer"
	"github.com/nathanielng/qdev/internal/logging"
	"github.com/nathanielng/qdev/internal/render"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Outstanding fragments buffered per client before it is considered
	// too slow and dropped
	sendBuffer = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Accept any origin: the preview may be opened from another machine
	// that discovered the server over mDNS.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one connected browser. All writes to the connection happen on
// its writePump goroutine; Publish and the seed frame only feed the send
// channel, so the connection never sees two concurrent writers.
type client struct {
	conn *websocket.Conn
	send chan string
	done chan struct{}
}

// Server is the live preview HTTP/WebSocket server. Create with NewServer,
// feed it artifacts with Publish, start it with Start.
type Server struct {
	renderer render.HTMLRenderer

	mu       sync.Mutex
	title    string
	fragment string
	clients  map[*client]struct{}

	listener net.Listener
	httpSrv  *http.Server
	mdns     mdnsHandle
}

// NewServer creates a preview server rendering with the given HTML renderer.
func NewServer(renderer render.HTMLRenderer) *Server {
	return &Server{
		renderer: renderer,
		title:    "qdev preview",
		fragment: "<pre>waiting for first artifact...</pre>",
		clients:  make(map[*client]struct{}),
	}
}

// Publish re-highlights the artifact and pushes the new markup to every
// connected browser. Safe to call before Start and from the UI loop.
func (s *Server) Publish(art layer.Artifact) {
	frag, err := s.renderer.Fragment(art.Text, render.Language)
	if err != nil {
		// Never let a highlighting failure blank the preview.
		frag = "<pre>" + template.HTMLEscapeString(art.Text) + "</pre>"
	}

	s.mu.Lock()
	s.fragment = frag
	s.title = art.SuggestedFilename
	targets := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	for _, c := range targets {
		select {
		case c.send <- frag:
		default:
			// The client is not draining its buffer; drop it.
			logging.Debug("dropping slow preview client",
				zap.String("remote_addr", c.conn.RemoteAddr().String()),
			)
			s.removeClient(c)
		}
	}
}

// Start binds addr (e.g. "127.0.0.1:0") and serves in the background.
// Returns the URL to open in a browser.
func (s *Server) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.httpSrv = &http.Server{Handler: mux}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			logging.Error("preview server stopped", zap.Error(err))
		}
	}()

	url := "http://" + ln.Addr().String()
	logging.Info("preview server listening", zap.String("url", url))
	return url, nil
}

// Port returns the bound TCP port. Only valid after Start.
func (s *Server) Port() int {
	if s.listener == nil {
		return 0
	}
	if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Shutdown stops the mDNS announcement and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopAnnounce()

	s.mu.Lock()
	for c := range s.clients {
		close(c.done)
		_ = c.conn.Close()
	}
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	data := previewData{
		Title:    s.title,
		Language: render.Language,
		Code:     template.HTML(s.fragment),
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := previewTemplate.Execute(w, data); err != nil {
		logging.Error("failed to render preview page", zap.Error(err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	logging.Info("preview client connected", zap.String("remote_addr", conn.RemoteAddr().String()))

	c := &client{
		conn: conn,
		send: make(chan string, sendBuffer),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	current := s.fragment
	s.mu.Unlock()

	// Seed the new client through its own channel so the first frame goes
	// out on the same writer as every later one.
	c.send <- current

	go s.writePump(c)

	// Drain the connection until the browser goes away. The client never
	// sends anything meaningful; the read loop is just close detection.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logging.Info("preview client disconnected",
					zap.String("remote_addr", conn.RemoteAddr().String()),
				)
				s.removeClient(c)
				return
			}
		}
	}()
}

// writePump is the single writer for one client connection.
func (s *Server) writePump(c *client) {
	for {
		select {
		case frag := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(frag)); err != nil {
				logging.Debug("dropping preview client",
					zap.String("remote_addr", c.conn.RemoteAddr().String()),
					zap.Error(err),
				)
				s.removeClient(c)
				return
			}
		case <-c.done:
			return
		}
	}
}

// removeClient deregisters c and closes its connection. Safe to call from
// any goroutine and more than once; done is closed only while c is still
// registered.
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.done)
	}
	s.mu.Unlock()
	_ = c.conn.Close()
}

type previewData struct {
	Title    string
	Language string
	Code     template.HTML
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - qdev preview</title>
<style>
:root {
  --background: #09090b;
  --foreground: #fafafa;
  --card: #171717;
  --muted-foreground: #a1a1aa;
  --primary: #6366f1;
  --border: #27272a;
}
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  background-color: var(--background);
  color: var(--foreground);
  min-height: 100vh;
  display: flex;
  flex-direction: column;
}
header {
  background-color: var(--card);
  border-bottom: 1px solid var(--border);
  padding: 1rem 2rem;
  display: flex;
  justify-content: space-between;
}
h1 { font-size: 1.125rem; font-weight: 600; }
#status { font-size: 0.875rem; color: var(--muted-foreground); }
#status.live { color: var(--primary); }
main { flex: 1; max-width: 1200px; margin: 0 auto; padding: 2rem; width: 100%; }
#code {
  background-color: var(--card);
  border: 1px solid var(--border);
  border-radius: 0.5rem;
  overflow-x: auto;
  padding: 1rem;
  font-size: 0.875rem;
  line-height: 1.7;
}
footer {
  background-color: var(--card);
  border-top: 1px solid var(--border);
  padding: 1rem 2rem;
  font-size: 0.875rem;
  color: var(--muted-foreground);
  text-align: center;
}
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <span id="status">connecting...</span>
</header>
<main>
  <div id="code">
{{.Code}}
  </div>
</main>
<footer>qdev live preview - the script updates as the configuration changes</footer>
<script>
function connect() {
  const status = document.getElementById("status");
  const ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onopen = () => { status.textContent = "live"; status.classList.add("live"); };
  ws.onmessage = (ev) => { document.getElementById("code").innerHTML = ev.data; };
  ws.onclose = () => {
    status.textContent = "disconnected - retrying";
    status.classList.remove("live");
    setTimeout(connect, 1000);
  };
}
connect();
</script>
</body>
</html>
`))
