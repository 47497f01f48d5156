package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/effective-security/jwtool/jwt"
	"github.com/effective-security/x/ctl"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	ctl *Cli
	// Out is the outpub buffer
	Out bytes.Buffer

	appFlags []string
}

func (s *testSuite) SetupSuite() {
	s.ctl = &Cli{}

	s.ctl.WithErrWriter(&s.Out).
		WithWriter(&s.Out)

	parser, err := kong.New(s.ctl,
		kong.Name("jwtool"),
		kong.Description("CLI tool"),
		kong.Writers(&s.Out, &s.Out),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{})
	if err != nil {
		s.FailNow("unexpected error constructing Kong: %+v", err)
	}

	flags := s.appFlags
	_, err = parser.Parse(flags)
	if err != nil {
		s.FailNow("unexpected error parsing: %+v", err)
	}
}

func (s *testSuite) SetupTest() {
	s.Out.Reset()
	s.ctl.WithReader(nil)
}

// HasText is a helper method to assert that the out stream contains the supplied
// text somewhere
func (s *testSuite) HasText(texts ...string) {
	outStr := s.Out.String()
	for _, t := range texts {
		s.Contains(outStr, t)
	}
}

// HasNoText is a helper method to assert that the out stream does not contain the supplied
// text anywhere
func (s *testSuite) HasNoText(texts ...string) {
	outStr := s.Out.String()
	for _, t := range texts {
		s.NotContains(outStr, t)
	}
}

// lastToken returns the token printed on the last output line
func (s *testSuite) lastToken() *jwt.Token {
	lines := strings.Split(strings.TrimSpace(s.Out.String()), "\n")
	t, err := jwt.DecodeUnverified(lines[len(lines)-1])
	s.Require().NoError(err)
	return t
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}

// configSuite shares the setup of testSuite with a configuration file,
// test methods of testSuite are not promoted
type configSuite struct {
	suite.Suite
	ts *testSuite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(configSuite))
}

func (s *configSuite) SetupSuite() {
	s.ts = &testSuite{
		appFlags: []string{"--config", "testdata/jwtool.yaml", "--debug"},
	}
	s.ts.SetT(s.T())
	s.ts.SetupSuite()
}

func (s *configSuite) SetupTest() {
	s.ts.SetT(s.T())
	s.ts.SetupTest()
}

func (s *configSuite) TestEncodeWithConfig() {
	ctl := s.ts.ctl
	s.True(ctl.Debug)
	s.Equal("HS512", ctl.Config().Algorithm)

	cmd := EncodeCmd{Payload: `{"sub":"x"}`}
	s.Require().NoError(cmd.Run(ctl))

	t := s.ts.lastToken()
	s.Equal("HS512", t.Algorithm)
	s.Equal("config-issuer", t.Claims.String("iss"))

	// flags override the file
	s.ts.Out.Reset()
	cmd = EncodeCmd{Payload: `{"sub":"x"}`, Alg: "HS256", Iss: "flag-issuer"}
	s.Require().NoError(cmd.Run(ctl))

	t = s.ts.lastToken()
	s.Equal("HS256", t.Algorithm)
	s.Equal("flag-issuer", t.Claims.String("iss"))
}

func (s *configSuite) TestVerifyWithConfig() {
	ctl := s.ts.ctl
	cmd := EncodeCmd{Payload: `{"sub":"x"}`}
	s.Require().NoError(cmd.Run(ctl))
	token := s.ts.lastToken().Raw

	s.ts.Out.Reset()
	v := VerifyCmd{Token: token}
	s.Require().NoError(v.Run(ctl))
	s.Equal("valid\n  [ok]   iss\n", s.ts.Out.String())

	s.ts.Out.Reset()
	v = VerifyCmd{Token: token, Iss: "other"}
	err := v.Run(ctl)
	s.EqualError(err, "claim validation failed: iss: issuer mismatch: config-issuer, expected: other")
}
