package poller

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	SongChanged    <-chan SongChange
	ListenRecorded <-chan Listen
	Dropped        <-chan DroppedListen
	Done           <-chan struct{}

	songCh    chan SongChange
	listenCh  chan Listen
	droppedCh chan DroppedListen
	doneCh    chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		songCh:    make(chan SongChange, eventBufferSize),
		listenCh:  make(chan Listen, eventBufferSize),
		droppedCh: make(chan DroppedListen, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.SongChanged = s.songCh
	s.ListenRecorded = s.listenCh
	s.Dropped = s.droppedCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

// sendSong sends a song change event (non-blocking).
func (s *Subscription) sendSong(e SongChange) {
	select {
	case s.songCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendListen(e Listen) {
	select {
	case s.listenCh <- e:
	default:
	}
}

func (s *Subscription) sendDropped(e DroppedListen) {
	select {
	case s.droppedCh <- e:
	default:
	}
}
