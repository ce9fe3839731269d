package archive

import (
	"sync"
	"time"
)

type notifierWatch struct {
	stop       chan struct{}
	done       sync.WaitGroup
	retryDelay time.Duration
}

// watchNotifier reconnects the follow-up queue whenever the broker closes
// the connection. Follow-ups fail fast while it is down.
func (archiver *Archiver) watchNotifier(retryDelay time.Duration) {
	watch := &notifierWatch{stop: make(chan struct{}), retryDelay: retryDelay}
	archiver.watch = watch
	watch.done.Add(1)
	go archiver.runNotifierWatch(watch)
}

func (archiver *Archiver) runNotifierWatch(watch *notifierWatch) {
	defer watch.done.Done()
	for {
		select {
		case <-watch.stop:
			return
		case rmqErr := <-archiver.notifier.closeErrors():
			archiver.notifierDown.Store(true)
			event := archiver.logger.Error()
			if rmqErr != nil {
				event = event.Str("reason", rmqErr.Reason).Int("code", rmqErr.Code)
			}
			event.Msg("Follow-up queue connection lost, trying to reconnect")
			if !archiver.reconnectNotifier(watch) {
				return
			}
		}
	}
}

// reconnectNotifier retries until it succeeds or the watch is stopped.
func (archiver *Archiver) reconnectNotifier(watch *notifierWatch) bool {
	for {
		err := archiver.notifier.reconnect()
		if err == nil {
			archiver.notifierDown.Store(false)
			archiver.logger.Info().Msg("Follow-up queue connection restored")
			return true
		}
		archiver.logger.Error().Err(err).Msg("Could not reconnect follow-up queue")
		select {
		case <-watch.stop:
			return false
		case <-time.After(watch.retryDelay):
		}
	}
}

func (archiver *Archiver) stopWatch() {
	if archiver.watch == nil {
		return
	}
	close(archiver.watch.stop)
	archiver.watch.done.Wait()
	archiver.watch = nil
}
