package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/jwtool/cmd/jwtool/cli"
	"github.com/effective-security/jwtool/internal/version"
	"github.com/effective-security/x/ctl"
)

type app struct {
	cli.Cli

	Encode  cli.EncodeCmd  `cmd:"" help:"sign a new HMAC token"`
	Decode  cli.DecodeCmd  `cmd:"" help:"print token header and claims, without verification"`
	Verify  cli.VerifyCmd  `cmd:"" help:"verify token signature and claims"`
	KeyBits cli.KeyBitsCmd `cmd:"" name:"keybits" help:"print the effective bit length of a secret"`
}

func main() {
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("jwtool"),
		kong.Description("HMAC JWT tools"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.Current().String(),
		})
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	parser.FatalIfErrorf(err)

	if ctx != nil {
		err = ctx.Run(&cl.Cli)
		ctx.FatalIfErrorf(err)
	}
}
