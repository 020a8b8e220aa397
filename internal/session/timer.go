package session

import "time"

// startTimerLocked launches the countdown when time remains and none is running.
func (m *Machine) startTimerLocked() {
	if m.timer != nil || m.snap.RemainingSeconds <= 0 || m.snap.Paused {
		return
	}
	stop := make(chan struct{})
	m.timer = stop
	go m.runTimer(stop)
}

func (m *Machine) stopTimerLocked() {
	if m.timer != nil {
		close(m.timer)
		m.timer = nil
	}
}

func (m *Machine) runTimer(stop chan struct{}) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !m.countdown(stop) {
				return
			}
		}
	}
}

// countdown takes one second off the clock while a question is open. At zero
// the session is paused and the timer stops; the state is left alone.
func (m *Machine) countdown(stop chan struct{}) bool {
	m.mu.Lock()
	if m.timer != stop {
		m.mu.Unlock()
		return false
	}
	if !m.snap.State.timed() {
		m.mu.Unlock()
		return true
	}

	m.snap.RemainingSeconds--
	expired := m.snap.RemainingSeconds <= 0
	if expired {
		m.snap.RemainingSeconds = 0
		m.snap.Paused = true
		m.timer = nil
	}
	m.saveLocked()
	onExpire := m.onExpire
	m.mu.Unlock()

	if expired && onExpire != nil {
		onExpire()
	}
	return !expired
}
