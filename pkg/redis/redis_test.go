package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestOpen(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := Open(Config{Addr: srv.Addr()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer client.Close()

	addr := srv.Addr()
	srv.Close()
	if _, err := Open(Config{Addr: addr}); err == nil {
		t.Fatal("expected error when the server is down")
	}
}
