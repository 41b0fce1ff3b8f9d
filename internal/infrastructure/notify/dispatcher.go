// Package notify runs best-effort background work: outbound email and
// media-store cleanup.
package notify

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/api/metrics"
	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

type jobKind int

const (
	jobEmail jobKind = iota
	jobMediaDelete
)

type job struct {
	kind jobKind

	to       string
	subject  string
	htmlBody string

	publicID string
	mediaK   domain.ResourceKind
}

// shardKey keeps jobs for the same target on the same worker, so a recipient's
// emails are delivered in the order they were scheduled.
func (j job) shardKey() string {
	if j.kind == jobEmail {
		return j.to
	}
	return j.publicID
}

// Dispatcher routes jobs to a fixed set of workers using consistent hashing on
// the job's target. It implements ports.Notifier. Failures are logged and
// counted, never surfaced to the request that scheduled the work.
type Dispatcher struct {
	workers []chan job
	mailer  ports.Mailer
	media   ports.MediaStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, media ports.MediaStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		mailer:  mailer,
		media:   media,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// EnqueueEmail schedules an HTML email. Non-blocking up to channelBuffer
// capacity.
func (d *Dispatcher) EnqueueEmail(to, subject, htmlBody string) {
	d.enqueue(job{kind: jobEmail, to: to, subject: subject, htmlBody: htmlBody})
}

// EnqueueMediaDelete schedules removal of a stored media object.
func (d *Dispatcher) EnqueueMediaDelete(publicID string, kind domain.ResourceKind) {
	d.enqueue(job{kind: jobMediaDelete, publicID: publicID, mediaK: kind})
}

func (d *Dispatcher) enqueue(j job) {
	i := d.shardIndex(j.shardKey())
	d.workers[i] <- j
	metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a shard key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, j)
			metrics.NotifyQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, j job) {
	switch j.kind {
	case jobEmail:
		if err := d.mailer.Send(ctx, j.to, j.subject, j.htmlBody); err != nil {
			metrics.EmailsSentTotal.WithLabelValues("error").Inc()
			d.log.Error().Err(err).
				Str("to", j.to).
				Str("subject", j.subject).
				Int("worker_id", workerID).
				Msg("email delivery failed")
			return
		}
		metrics.EmailsSentTotal.WithLabelValues("success").Inc()
	case jobMediaDelete:
		if err := d.media.Delete(ctx, j.publicID, j.mediaK); err != nil {
			metrics.MediaCleanupTotal.WithLabelValues("error").Inc()
			d.log.Error().Err(err).
				Str("public_id", j.publicID).
				Int("worker_id", workerID).
				Msg("media cleanup failed")
			return
		}
		metrics.MediaCleanupTotal.WithLabelValues("success").Inc()
	}
}
