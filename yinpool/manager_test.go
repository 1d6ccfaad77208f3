package yinpool

import (
	"context"
	"math"
	"testing"

	"github.com/andaru/yin/yin"
)

const validModuleDoc = `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
  <namespace uri="urn:m"/>
  <prefix value="m"/>
</module>`

const invalidModuleDoc = `<module name="m" xmlns="urn:ietf:params:xml:ns:yang:yin:1">
  <prefix value="m"/>
</module>`

func TestPoolSubmitAndWait(t *testing.T) {
	p := NewPool()
	dict := yin.NewDictionary()

	j1, err := p.Submit(context.Background(), BytesSource{Data: []byte(validModuleDoc), K: KindModule}, dict, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	j2, err := p.Submit(context.Background(), BytesSource{Data: []byte(invalidModuleDoc), K: KindModule}, dict, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if j1.ID() == j2.ID() {
		t.Fatalf("Submit() gave duplicate job IDs: %v", j1.ID())
	}

	results := p.Wait()
	if len(results) != 2 {
		t.Fatalf("Wait() returned %d results, want 2", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("job 1: unexpected error = %v", results[0].Err)
	}
	if results[0].Module == nil || results[0].Module.Name != "m" {
		t.Errorf("job 1: unexpected module = %+v", results[0].Module)
	}
	if results[1].Err == nil {
		t.Errorf("job 2: expected an error for a module missing namespace")
	}
}

func TestPoolJobWait(t *testing.T) {
	p := NewPool()
	dict := yin.NewDictionary()
	j, err := p.Submit(context.Background(), BytesSource{Data: []byte(validModuleDoc), K: KindModule}, dict, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	r := <-j.Wait()
	if r.Err != nil {
		t.Fatalf("Wait() error = %v", r.Err)
	}
	if r.Module.Name != "m" {
		t.Errorf("Wait() module name = %q, want %q", r.Module.Name, "m")
	}
}

func TestPoolSubmitNilSource(t *testing.T) {
	p := NewPool()
	if _, err := p.Submit(context.Background(), nil, yin.NewDictionary(), nil); err == nil {
		t.Error("Submit(nil) expected an error")
	}
}

func TestPoolSubmitCancelled(t *testing.T) {
	p := NewPool()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	j, err := p.Submit(ctx, BytesSource{Data: []byte(validModuleDoc), K: KindModule}, yin.NewDictionary(), nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	r := <-j.Wait()
	if r.Err == nil {
		t.Error("expected a cancellation error for a pre-cancelled context")
	}
}

func TestPoolWithIDSourceWrapsAroundZero(t *testing.T) {
	p := NewPool(WithIDSource(&genIncrement{id: math.MaxUint32}))
	dict := yin.NewDictionary()
	j, err := p.Submit(context.Background(), BytesSource{Data: []byte(validModuleDoc), K: KindModule}, dict, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if j.ID() == 0 {
		t.Error("Submit() assigned the reserved zero ID")
	}
	<-j.Wait()
}

func TestPoolWithConcurrencyLimitsParallelism(t *testing.T) {
	p := NewPool(WithConcurrency(1))
	dict := yin.NewDictionary()
	var jobs []Job
	for i := 0; i < 5; i++ {
		j, err := p.Submit(context.Background(), BytesSource{Data: []byte(validModuleDoc), K: KindModule}, dict, nil)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		jobs = append(jobs, j)
	}
	for _, j := range jobs {
		r := <-j.Wait()
		if r.Err != nil {
			t.Errorf("job %v: unexpected error = %v", j.ID(), r.Err)
		}
	}
}
