package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/geolens"
	main "github.com/fwojciec/geolens/cmd/geolens"
	geogin "github.com/fwojciec/geolens/gin"
	"github.com/fwojciec/geolens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveServer builds an API server over a fixed analysis pipeline.
func serveServer(report *geolens.Report) *geogin.Server {
	s := geogin.NewServer()
	s.Fetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return "<html><body>page</body></html>", nil
		},
	}
	s.Parser = &mock.Parser{
		ParseFn: func(_ context.Context, page *geolens.Page) (*geolens.Content, error) {
			return &geolens.Content{Ref: page.Ref, RawHTML: page.HTML}, nil
		},
	}
	s.Analyzer = &mock.Analyzer{
		AnalyzeFn: func(_ context.Context, _ *geolens.Content) (*geolens.Report, error) {
			return report, nil
		},
	}
	return s
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("serves until the context is canceled", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		ctx, cancel := context.WithCancel(context.Background())

		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: stdout,
			Stderr: stderr,
			Server: serveServer(testReport(80, 65)),
		}

		done := make(chan error, 1)
		go func() {
			done <- (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("serve did not shut down")
		}

		assert.Contains(t, stdout.String(), "Listening on http://127.0.0.1:")
		assert.Contains(t, stdout.String(), "Shutting down")
	})

	t.Run("drains the job queue on shutdown", func(t *testing.T) {
		t.Parallel()

		server := serveServer(testReport(80, 65))
		queue := geogin.NewJobQueue(func(_ context.Context, _ string) (*geolens.Report, error) {
			time.Sleep(20 * time.Millisecond)
			return testReport(80, 65), nil
		})
		server.Jobs = queue

		ctx, cancel := context.WithCancel(context.Background())
		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Server: server,
			Queue:  queue,
		}

		job, err := queue.EnqueueJob(context.Background(), "https://example.com/pricing")
		require.NoError(t, err)

		cancel()

		done := make(chan error, 1)
		go func() {
			done <- (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("serve did not shut down")
		}

		got, err := queue.FindJobByID(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Equal(t, geolens.JobCompleted, got.Status)
	})

	t.Run("fails when the server cannot listen", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Server: serveServer(testReport(80, 65)),
		}

		err := (&main.ServeCmd{Addr: ""}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, geolens.EINVALID, geolens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
