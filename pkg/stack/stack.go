package stack

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/klothoplatform/sesdomain/pkg/closenicely"
	"github.com/klothoplatform/sesdomain/pkg/config"
	"github.com/klothoplatform/sesdomain/pkg/emaildomain"
	"github.com/klothoplatform/sesdomain/pkg/logging"
	"github.com/pkg/errors"
	"github.com/pulumi/pulumi/sdk/v3/go/auto"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optdestroy"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optpreview"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optrefresh"
	"github.com/pulumi/pulumi/sdk/v3/go/auto/optup"
	"github.com/pulumi/pulumi/sdk/v3/go/common/tokens"
	"github.com/pulumi/pulumi/sdk/v3/go/common/workspace"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const passphraseEnv = "PULUMI_CONFIG_PASSPHRASE"

//go:generate mockgen -source=./stack.go --destination=./stack_mock_test.go --package=stack

// Stack is the part of [auto.Stack] the driver uses.
type Stack interface {
	SetConfig(ctx context.Context, key string, val auto.ConfigValue) error
	Refresh(ctx context.Context, opts ...optrefresh.Option) (auto.RefreshResult, error)
	Preview(ctx context.Context, opts ...optpreview.Option) (auto.PreviewResult, error)
	Up(ctx context.Context, opts ...optup.Option) (auto.UpResult, error)
	Destroy(ctx context.Context, opts ...optdestroy.Option) (auto.DestroyResult, error)
	Outputs(ctx context.Context) (auto.OutputMap, error)
}

type Reference struct {
	Project  string
	Name     string
	StateDir string
	Region   string
}

func ReferenceFor(cfg config.Config) Reference {
	return Reference{
		Project:  cfg.Project,
		Name:     cfg.Environment,
		StateDir: cfg.StateDir,
		Region:   cfg.Region,
	}
}

// Initialize creates or selects the stack for ref, running program inline. State is kept in a
// local file backend under ref.StateDir and secrets are encrypted with a passphrase
// (PULUMI_CONFIG_PASSPHRASE, empty if unset).
func Initialize(ctx context.Context, ref Reference, program pulumi.RunFunc) (auto.Stack, error) {
	if ref.StateDir == "" {
		return auto.Stack{}, errors.New("no state directory configured")
	}
	// PulumiHome customizes the location of $PULUMI_HOME where metadata is stored and plugins are installed.
	pulumiHomeDir := filepath.Join(filepath.Dir(ref.StateDir), "pulumi")
	for _, dir := range []string{pulumiHomeDir, ref.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return auto.Stack{}, errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	proj := auto.Project(workspace.Project{
		Name:    tokens.PackageName(ref.Project),
		Runtime: workspace.NewProjectRuntimeInfo("go", nil),
		Backend: &workspace.ProjectBackend{
			URL: "file://" + ref.StateDir,
		},
	})
	envvars := auto.EnvVars(map[string]string{
		passphraseEnv: os.Getenv(passphraseEnv),
	})
	return auto.UpsertStackInlineSource(ctx, ref.Name, ref.Project, program, proj, envvars,
		auto.PulumiHome(pulumiHomeDir), auto.SecretsProvider("passphrase"))
}

// Driver runs the stack operations for one email domain deployment.
type Driver struct {
	Stack Stack
	Ref   Reference
	// Progress receives the engine's progress output; nil logs it at debug.
	Progress io.Writer
	// Remove deletes the stack from the backend after it has been destroyed. Optional.
	Remove func(ctx context.Context, name string) error
}

// Open initializes the stack for cfg with the email domain program.
func Open(ctx context.Context, cfg config.Config) (*Driver, error) {
	ref := ReferenceFor(cfg)
	s, err := Initialize(ctx, ref, emaildomain.Program(cfg))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create or select stack %s", ref.Name)
	}
	logging.GetLogger(ctx).Named("stack").Info("selected stack", zap.String("stack", ref.Name), zap.String("project", ref.Project))
	ws := s.Workspace()
	return &Driver{
		Stack: &s,
		Ref:   ref,
		Remove: func(ctx context.Context, name string) error {
			return ws.RemoveStack(ctx, name)
		},
	}, nil
}

func (d *Driver) log(ctx context.Context) *zap.Logger {
	return logging.GetLogger(ctx).Named("stack").With(zap.String("stack", d.Ref.Name))
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// progress returns the stream for one engine operation; close it once the operation returns.
func (d *Driver) progress(ctx context.Context) io.WriteCloser {
	if d.Progress != nil {
		return nopCloser{d.Progress}
	}
	return logging.NewWriter(d.log(ctx).Named("engine"), zapcore.DebugLevel)
}

// configure sets the stack configuration specifying the AWS region to deploy to.
func (d *Driver) configure(ctx context.Context) error {
	if err := d.Stack.SetConfig(ctx, "aws:region", auto.ConfigValue{Value: d.Ref.Region}); err != nil {
		return errors.Wrap(err, "failed to set stack configuration")
	}
	return nil
}

func (d *Driver) refresh(ctx context.Context) error {
	log := d.log(ctx)
	log.Info("starting refresh")
	progress := d.progress(ctx)
	defer closenicely.OrDebug(progress)
	if _, err := d.Stack.Refresh(ctx, optrefresh.ProgressStreams(progress)); err != nil {
		return errors.Wrap(err, "failed to refresh stack")
	}
	log.Debug("refresh succeeded")
	return nil
}

func (d *Driver) Preview(ctx context.Context) (auto.PreviewResult, error) {
	if err := d.configure(ctx); err != nil {
		return auto.PreviewResult{}, err
	}
	progress := d.progress(ctx)
	defer closenicely.OrDebug(progress)
	res, err := d.Stack.Preview(ctx, optpreview.ProgressStreams(progress))
	if err != nil {
		return res, errors.Wrap(err, "failed to preview stack")
	}
	d.log(ctx).Info("preview complete", zap.Any("changes", res.ChangeSummary))
	return res, nil
}

// Up refreshes the stack and then updates it, returning the resulting outputs.
func (d *Driver) Up(ctx context.Context) (Outputs, error) {
	if err := d.configure(ctx); err != nil {
		return Outputs{}, err
	}
	if err := d.refresh(ctx); err != nil {
		return Outputs{}, err
	}
	log := d.log(ctx)
	log.Info("starting update")
	progress := d.progress(ctx)
	defer closenicely.OrDebug(progress)
	res, err := d.Stack.Up(ctx, optup.ProgressStreams(progress))
	if err != nil {
		return Outputs{}, errors.Wrap(err, "failed to update stack")
	}
	out, err := ParseOutputs(res.Outputs)
	if err != nil {
		return out, err
	}
	log.Info("deployed stack", out.Fields()...)
	return out, nil
}

// Down refreshes and destroys the stack, then removes it from the backend.
func (d *Driver) Down(ctx context.Context) error {
	if err := d.configure(ctx); err != nil {
		return err
	}
	if err := d.refresh(ctx); err != nil {
		return err
	}
	log := d.log(ctx)
	log.Info("starting destroy")
	progress := d.progress(ctx)
	defer closenicely.OrDebug(progress)
	if _, err := d.Stack.Destroy(ctx, optdestroy.ProgressStreams(progress)); err != nil {
		return errors.Wrap(err, "failed to destroy stack")
	}
	log.Info("destroyed stack")

	if d.Remove == nil {
		return nil
	}
	if err := d.Remove(ctx, d.Ref.Name); err != nil {
		return errors.Wrap(err, "failed to remove stack")
	}
	return nil
}

func (d *Driver) Outputs(ctx context.Context) (Outputs, error) {
	m, err := d.Stack.Outputs(ctx)
	if err != nil {
		return Outputs{}, errors.Wrap(err, "failed to read stack outputs")
	}
	return ParseOutputs(m)
}
