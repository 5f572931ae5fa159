package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/observability/telemetry"
)

const (
	// SubmitTimeout is the default for how long a caller waits for its reply.
	SubmitTimeout = 30 * time.Second

	// handleTimeout bounds a single command so a stuck collaborator call
	// cannot wedge the worker past the caller's deadline.
	handleTimeout = 25 * time.Second

	timeoutMessage = "Command processing timeout. Please try again."
)

// Processor handles one command to completion. Implemented by the assistant
// engine.
type Processor interface {
	Handle(ctx context.Context, cmd domain.Command) domain.Result
}

type request struct {
	cmd   domain.Command
	reply chan domain.Result
}

// Pipeline serializes command processing through a single worker goroutine.
// The engine's dialogue state is only ever touched by that worker, so
// concurrent HTTP requests stay safe without locking in the engine. The
// queue is unbounded; backpressure comes from the caller-side timeout.
type Pipeline struct {
	proc     Processor
	log      *zap.Logger
	onResult func(domain.Result)

	submitTimeout time.Duration

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []request
	stopped bool
	done    chan struct{}
}

func New(proc Processor, log *zap.Logger) *Pipeline {
	p := &Pipeline{
		proc:          proc,
		log:           log,
		submitTimeout: SubmitTimeout,
		done:          make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// OnResult registers a hook invoked by the worker after every processed
// command, before the reply is delivered. Used to broadcast utterances and
// publish events. Must be set before Start.
func (p *Pipeline) OnResult(fn func(domain.Result)) {
	p.onResult = fn
}

// SetSubmitTimeout overrides how long Submit waits for a reply. Call before
// Start.
func (p *Pipeline) SetSubmitTimeout(d time.Duration) {
	p.submitTimeout = d
}

// Start launches the worker goroutine.
func (p *Pipeline) Start() {
	go p.run()
}

// Submit enqueues a command and waits for its result. It returns
// domain.ErrProcessingTimeout when the reply does not arrive in time and
// domain.ErrPipelineStopped once the assistant has shut down.
func (p *Pipeline) Submit(ctx context.Context, cmd domain.Command) (domain.Result, error) {
	req := request{cmd: cmd, reply: make(chan domain.Result, 1)}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return domain.Result{}, domain.ErrPipelineStopped
	}
	p.queue = append(p.queue, req)
	telemetry.PipelineQueueDepth.Set(float64(len(p.queue)))
	p.cond.Signal()
	p.mu.Unlock()

	timer := time.NewTimer(p.submitTimeout)
	defer timer.Stop()

	select {
	case res := <-req.reply:
		if res.Err == domain.ErrPipelineStopped {
			return res, domain.ErrPipelineStopped
		}
		return res, nil
	case <-timer.C:
		telemetry.PipelineTimeouts.Inc()
		p.log.Warn("command timed out", zap.String("command_id", cmd.ID))
		return domain.Result{
			CommandID:  cmd.ID,
			Utterances: []string{timeoutMessage},
			Success:    false,
		}, domain.ErrProcessingTimeout
	case <-ctx.Done():
		return domain.Result{CommandID: cmd.ID, Success: false}, ctx.Err()
	}
}

// Stop refuses new submissions, fails everything still queued and waits for
// the worker to exit. Safe to call more than once.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		<-p.done
		return
	}
	p.stopped = true
	p.cond.Broadcast()
	p.mu.Unlock()
	<-p.done
}

func (p *Pipeline) run() {
	defer close(p.done)
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if p.stopped {
			// Drain anything that raced in before the stop flag.
			pending := p.queue
			p.queue = nil
			p.mu.Unlock()
			for _, req := range pending {
				req.reply <- domain.Result{
					CommandID: req.cmd.ID,
					Success:   false,
					Err:       domain.ErrPipelineStopped,
				}
			}
			return
		}
		req := p.queue[0]
		p.queue = p.queue[1:]
		telemetry.PipelineQueueDepth.Set(float64(len(p.queue)))
		p.mu.Unlock()

		res := p.process(req.cmd)
		if p.onResult != nil {
			p.onResult(res)
		}
		req.reply <- res

		if res.ShouldStop {
			p.mu.Lock()
			p.stopped = true
			p.cond.Broadcast()
			p.mu.Unlock()
		}
	}
}

// process runs one command under the worker deadline, converting panics into
// failed results so one bad handler cannot kill the worker.
func (p *Pipeline) process(cmd domain.Command) (res domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("handler panicked",
				zap.String("command_id", cmd.ID),
				zap.Any("panic", r))
			res = domain.Result{
				CommandID:  cmd.ID,
				Utterances: []string{"Sorry, there was an error processing your command."},
				Success:    false,
				Err:        fmt.Errorf("handler panic: %v", r),
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	return p.proc.Handle(ctx, cmd)
}
