package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/next-trace/scg-mediator/internal/cli"
)

func execute(t *testing.T, args ...string) (string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := cli.NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	require.NoError(t, root.ExecuteContext(t.Context()))

	return stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	out, logs := execute(t, "run", "--name", "Ada")

	assert.Contains(t, out, "greet:         Hello, Ada!")
	assert.Contains(t, out, "create user:   Ada (")
	assert.Contains(t, out, "invalid user:  rejected: invalid name")
	assert.Contains(t, out, "published:     demo.UserCreated")
	assert.Contains(t, out, "dispatches=3 publishes=1 failures=2 handled=1")
	assert.NotContains(t, out, "mediate_dispatch_total")

	assert.Contains(t, logs, "listener failed")
	assert.Contains(t, logs, "crm unavailable")
}

func TestRun_Metrics(t *testing.T) {
	t.Setenv("MEDIATE_METRICS_ENABLED", "true")
	t.Setenv("MEDIATE_LOGGING_LEVEL", "error")

	out, logs := execute(t, "run")

	assert.Contains(t, out, "Hello, world!")
	assert.Contains(t, out, `mediate_dispatch_total{request="demo.Greet",status="success"} 1`)
	assert.Contains(t, out, `mediate_failures_total{dispatched="demo.CreateUser",failure="demo.ValidationFailed",handled="true"} 1`)
	assert.Contains(t, out, `mediate_publish_total{notification="demo.UserCreated",status="success"} 1`)
	assert.Empty(t, logs)
}

func TestKinds(t *testing.T) {
	out, _ := execute(t, "kinds")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "mediator.Request")
	assert.Contains(t, lines, "  demo.Greet")
	assert.Contains(t, lines, "  demo.ValidationFailed")
	assert.Contains(t, lines, "  mediator.Panic")
	assert.Contains(t, lines, "  demo.RejectInvalid")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("MEDIATE_LOGGING_FORMAT", "xml")

	root := cli.NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"run"})

	err := root.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
