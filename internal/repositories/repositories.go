// package repositories provides the local persistence layer.
//
// The client keeps a read-through cache of the server-owned movie catalog in
// SQLite so listings survive backend outages and `movies list --cached` works
// offline. The cache is advisory: it is replaced wholesale after each
// successful catalog fetch and never written from user input.
package repositories
