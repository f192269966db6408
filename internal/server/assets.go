package server

import "net/http"

const stylesheet = `:root{--accent:#2b6cb0;--border:#d0d7de;--muted:#6a737d}
body{font-family:system-ui,sans-serif;margin:0;color:#1f2328}
main{max-width:1100px;margin:0 auto;padding:16px}
.site-nav{background:var(--accent);padding:10px 16px}
.site-nav a{color:#fff;margin-right:16px;text-decoration:none}
.site-footer{color:var(--muted);text-align:center;padding:12px}
table.records{border-collapse:collapse;width:100%;margin:12px 0}
table.records th,table.records td{border:1px solid var(--border);padding:6px 10px;text-align:left}
table.records th a{color:inherit;text-decoration:none}
.status{padding:2px 8px;border-radius:10px;font-size:.85em}
.status-available{background:#dafbe1;color:#116329}
.status-rented{background:#ffebe9;color:#a40e26}
.list-controls{display:flex;justify-content:space-between;align-items:center;gap:12px}
.list-controls .exports a{margin-left:10px}
form.inline{display:inline;margin-right:4px}
.record-form input,.record-form select{display:block;margin:6px 0;padding:6px;width:280px}
.add-form input{margin:4px 6px 4px 0;padding:6px}
.btn-delete{background:#cf222e;color:#fff;border:0;padding:4px 10px;border-radius:4px;cursor:pointer}
.btn-edit,.btn-info{background:var(--accent);color:#fff;border:0;padding:4px 10px;border-radius:4px;cursor:pointer}
.stat-card{border:1px solid var(--border);border-radius:8px;padding:20px;display:inline-block}
.stat{font-size:2.4em;font-weight:700;margin-right:8px}
.quick-links a{display:inline-block;margin:14px 14px 0 0}
.info-card{position:absolute;background:#fff;border:1px solid var(--border);border-radius:8px;padding:16px;box-shadow:0 4px 14px rgba(0,0,0,.15);cursor:move;max-width:320px}
.info-card .hint{color:var(--muted);font-size:.85em}
.confirm form{margin-top:10px}
`

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(stylesheet))
}
