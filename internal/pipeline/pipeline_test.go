package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
)

// recordingProcessor echoes the command ID back and remembers the order in
// which commands reached it.
type recordingProcessor struct {
	mu    sync.Mutex
	seen  []string
	delay time.Duration
}

func (p *recordingProcessor) Handle(ctx context.Context, cmd domain.Command) domain.Result {
	p.mu.Lock()
	p.seen = append(p.seen, cmd.ID)
	p.mu.Unlock()
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return domain.Result{
		CommandID:  cmd.ID,
		Utterances: []string{"echo " + cmd.Text},
		Success:    true,
	}
}

type funcProcessor func(ctx context.Context, cmd domain.Command) domain.Result

func (f funcProcessor) Handle(ctx context.Context, cmd domain.Command) domain.Result {
	return f(ctx, cmd)
}

func TestSubmit_RepliesMatchCommands(t *testing.T) {
	proc := &recordingProcessor{}
	p := New(proc, zap.NewNop())
	p.Start()
	defer p.Stop()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("cmd-%d", i)
		res, err := p.Submit(context.Background(), domain.Command{ID: id, Text: id})
		if err != nil {
			t.Fatalf("Submit(%s): %v", id, err)
		}
		if res.CommandID != id {
			t.Errorf("got reply for %s, want %s", res.CommandID, id)
		}
	}
}

func TestSubmit_ConcurrentCallersGetOwnReplies(t *testing.T) {
	proc := &recordingProcessor{delay: 5 * time.Millisecond}
	p := New(proc, zap.NewNop())
	p.Start()
	defer p.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("cmd-%d", i)
			res, err := p.Submit(context.Background(), domain.Command{ID: id})
			if err != nil {
				t.Errorf("Submit(%s): %v", id, err)
				return
			}
			if res.CommandID != id {
				t.Errorf("got reply for %s, want %s", res.CommandID, id)
			}
		}(i)
	}
	wg.Wait()

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.seen) != 10 {
		t.Errorf("processor handled %d commands, want 10", len(proc.seen))
	}
}

func TestSubmit_TimesOutOnSlowProcessor(t *testing.T) {
	proc := &recordingProcessor{delay: 200 * time.Millisecond}
	p := New(proc, zap.NewNop())
	p.SetSubmitTimeout(20 * time.Millisecond)
	p.Start()
	defer p.Stop()

	start := time.Now()
	res, err := p.Submit(context.Background(), domain.Command{ID: "slow"})

	if err != domain.ErrProcessingTimeout {
		t.Fatalf("got err %v, want ErrProcessingTimeout", err)
	}
	if res.Success {
		t.Error("expected a failed result on timeout")
	}
	if res.CommandID != "slow" {
		t.Errorf("got reply for %q, want slow", res.CommandID)
	}
	if len(res.Utterances) != 1 || res.Utterances[0] != "Command processing timeout. Please try again." {
		t.Errorf("unexpected utterances: %v", res.Utterances)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("Submit returned after %v, want the shortened timeout", elapsed)
	}
}

func TestSubmit_PanicBecomesFailedResult(t *testing.T) {
	proc := funcProcessor(func(ctx context.Context, cmd domain.Command) domain.Result {
		panic("boom")
	})
	p := New(proc, zap.NewNop())
	p.Start()
	defer p.Stop()

	res, err := p.Submit(context.Background(), domain.Command{ID: "bad"})

	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Success {
		t.Error("expected a failed result after a panic")
	}
	if len(res.Utterances) == 0 || res.Utterances[0] != "Sorry, there was an error processing your command." {
		t.Errorf("unexpected utterances: %v", res.Utterances)
	}
}

func TestSubmit_WorkerSurvivesPanic(t *testing.T) {
	calls := 0
	proc := funcProcessor(func(ctx context.Context, cmd domain.Command) domain.Result {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return domain.Result{CommandID: cmd.ID, Success: true}
	})
	p := New(proc, zap.NewNop())
	p.Start()
	defer p.Stop()

	p.Submit(context.Background(), domain.Command{ID: "first"})
	res, err := p.Submit(context.Background(), domain.Command{ID: "second"})

	if err != nil || !res.Success {
		t.Errorf("worker died after panic: res=%+v err=%v", res, err)
	}
}

func TestSubmit_StopResultShutsPipelineDown(t *testing.T) {
	proc := funcProcessor(func(ctx context.Context, cmd domain.Command) domain.Result {
		return domain.Result{CommandID: cmd.ID, Success: true, ShouldStop: true}
	})
	p := New(proc, zap.NewNop())
	p.Start()

	res, err := p.Submit(context.Background(), domain.Command{ID: "farewell"})
	if err != nil || !res.ShouldStop {
		t.Fatalf("res=%+v err=%v", res, err)
	}

	// Give the worker a moment to observe the stop flag.
	time.Sleep(20 * time.Millisecond)

	_, err = p.Submit(context.Background(), domain.Command{ID: "late"})
	if err != domain.ErrPipelineStopped {
		t.Errorf("got err %v, want ErrPipelineStopped", err)
	}
	p.Stop()
}

func TestSubmit_AfterStop(t *testing.T) {
	p := New(&recordingProcessor{}, zap.NewNop())
	p.Start()
	p.Stop()

	_, err := p.Submit(context.Background(), domain.Command{ID: "late"})
	if err != domain.ErrPipelineStopped {
		t.Errorf("got err %v, want ErrPipelineStopped", err)
	}
}

func TestSubmit_ContextCancellation(t *testing.T) {
	proc := &recordingProcessor{delay: 200 * time.Millisecond}
	p := New(proc, zap.NewNop())
	p.Start()
	defer p.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := p.Submit(ctx, domain.Command{ID: "cancelled"})
	if err != context.Canceled {
		t.Errorf("got err %v, want context.Canceled", err)
	}
}

func TestOnResult_HookSeesEveryResult(t *testing.T) {
	proc := &recordingProcessor{}
	p := New(proc, zap.NewNop())

	var mu sync.Mutex
	var hooked []string
	p.OnResult(func(res domain.Result) {
		mu.Lock()
		hooked = append(hooked, res.CommandID)
		mu.Unlock()
	})
	p.Start()
	defer p.Stop()

	for i := 0; i < 3; i++ {
		p.Submit(context.Background(), domain.Command{ID: fmt.Sprintf("cmd-%d", i)})
	}

	mu.Lock()
	defer mu.Unlock()
	if len(hooked) != 3 {
		t.Errorf("hook saw %d results, want 3", len(hooked))
	}
}
