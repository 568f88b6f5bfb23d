package tui

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

type fakeSSHSession struct {
	ssh.Session
	user string
}

func (f fakeSSHSession) User() string { return f.user }

func (f fakeSSHSession) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000}
}

func waitActive(t *testing.T, s *SSHServer, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ActiveSessions() != want {
		if time.Now().After(deadline) {
			t.Fatalf("active sessions = %d, want %d", s.ActiveSessions(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStoreOutlivesSessions(t *testing.T) {
	store := openStore(t)
	s := &SSHServer{store: store, logger: log.New(io.Discard)}

	release := make(chan struct{})
	handler := s.trackSession(func(ssh.Session) { <-release })
	finished := make(chan struct{})
	go func() {
		handler(fakeSSHSession{user: "alice"})
		close(finished)
	}()
	waitActive(t, s, 1)

	if s.releaseStore(20 * time.Millisecond) {
		t.Fatal("store closed while a session was running")
	}
	if _, err := store.HighScore("hexfit"); err != nil {
		t.Fatalf("running session lost the store: %v", err)
	}

	close(release)
	<-finished
	if !s.releaseStore(time.Second) {
		t.Fatal("store not closed after the last session ended")
	}
	if s.store != nil {
		t.Error("server still references the closed store")
	}
	if _, err := store.HighScore("hexfit"); err == nil {
		t.Error("store still usable after release")
	}
	waitActive(t, s, 0)
}
