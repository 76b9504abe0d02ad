package common

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Interrupt blocks until the process receives SIGINT or SIGTERM, or the
// cancel channel closes. It is meant to run as an actor in a run.Group.
func Interrupt(cancel <-chan struct{}) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case sig := <-sigs:
		return fmt.Errorf("received signal %s", sig)
	case <-cancel:
		return errors.New("canceled")
	}
}
