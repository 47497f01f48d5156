package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/jwtool/config"
	"github.com/effective-security/jwtool/x/print"
	"github.com/effective-security/x/ctl"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/jwtool", "cli")

// Cli provides CLI context to run commands
type Cli struct {
	Version ctl.VersionFlag `name:"version" help:"Print version information and quit" hidden:""`

	Debug bool   `short:"D" help:"Enable debug logging"`
	Cfg   string `name:"config" help:"Optional configuration file, YAML or JSON"`

	// Stdin is the source to read from, typically set to os.Stdin
	stdin io.Reader
	// Output is the destination for all output from the command, typically set to os.Stdout
	output io.Writer
	// ErrOutput is the destinaton for errors.
	// If not set, errors will be written to os.StdError
	errOutput io.Writer

	ctx    context.Context
	config *config.Config
}

// Context for requests
func (c *Cli) Context() context.Context {
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	return c.ctx
}

// Reader is the source to read from, typically set to os.Stdin
func (c *Cli) Reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// WithReader allows to specify a custom reader
func (c *Cli) WithReader(reader io.Reader) *Cli {
	c.stdin = reader
	return c
}

// Writer returns a writer for control output
func (c *Cli) Writer() io.Writer {
	if c.output != nil {
		return c.output
	}
	return os.Stdout
}

// WithWriter allows to specify a custom writer
func (c *Cli) WithWriter(out io.Writer) *Cli {
	c.output = out
	return c
}

// ErrWriter returns a writer for control output
func (c *Cli) ErrWriter() io.Writer {
	if c.errOutput != nil {
		return c.errOutput
	}
	return os.Stderr
}

// WithErrWriter allows to specify a custom error writer
func (c *Cli) WithErrWriter(out io.Writer) *Cli {
	c.errOutput = out
	return c
}

// AfterApply hook loads config
func (c *Cli) AfterApply(_ *kong.Kong, _ kong.Vars) error {
	if c.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.ERROR)
	}

	cfg, err := config.Load(c.Cfg)
	if err != nil {
		return err
	}
	c.config = cfg
	return nil
}

// Config returns the loaded configuration
func (c *Cli) Config() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// WriteJSON prints response to out
func (c *Cli) WriteJSON(value any) {
	print.JSON(c.Writer(), value)
}

// ReadFile reads from stdin if the file is "-"
func (c *Cli) ReadFile(filename string) ([]byte, error) {
	if filename == "" {
		return nil, errors.New("empty file name")
	}
	if filename == "-" {
		return io.ReadAll(c.Reader())
	}
	return os.ReadFile(filename)
}

// ReadValue returns the value itself, the content of the file for "@file",
// or stdin for "-"
func (c *Cli) ReadValue(val string) ([]byte, error) {
	switch {
	case val == "-":
		return c.ReadFile(val)
	case strings.HasPrefix(val, "@"):
		return c.ReadFile(val[1:])
	}
	return []byte(val), nil
}

// ReadToken returns the token from the argument, or stdin for "-"
func (c *Cli) ReadToken(val string) (string, error) {
	b, err := c.ReadValue(val)
	if err != nil {
		return "", errors.WithMessage(err, "unable to read token")
	}
	return strings.TrimSpace(string(b)), nil
}
