package diagnostics

import "github.com/opsbox/opsbox/internal/check"

// Catalog assembles the static troubleshooter registry. Registration order
// is the order checks appear in help output and reports.
func Catalog() *check.Registry {
	r := check.NewRegistry()
	r.Register("ssh", NewSSH().Description(), NewSSH)
	r.Register("dns", NewDNS().Description(), NewDNS)
	r.Register("web", NewWeb().Description(), NewWeb)
	r.Register("http", NewHTTP().Description(), NewHTTP)
	r.Register("ftp", NewFTP().Description(), NewFTP)
	r.Register("smtp", NewSMTP().Description(), NewSMTP)
	return r
}
