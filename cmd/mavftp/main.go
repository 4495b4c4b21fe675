// Command mavftp is a CLI front end to the ftp engine: get/put/ls and
// the directory-mutation single-shot ops, the way the teacher shipped
// grz/gsz as thin CLI wrappers around its protocol engine.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/aurelia-robotics/mavftp/ftp"
	"github.com/aurelia-robotics/mavftp/mavlink"
)

func main() {
	app := &cli.App{
		Name:  "mavftp",
		Usage: "talk to a MAVLink FTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to mavftp.yaml"},
			&cli.StringFlag{Name: "local", Value: ":14555", Usage: "local UDP address to bind"},
			&cli.StringFlag{Name: "remote", Usage: "remote UDP address of the FTP server", Required: true},
			&cli.UintFlag{Name: "system-id", Value: 255, Usage: "our own MAVLink system id"},
			&cli.UintFlag{Name: "component-id", Value: 190, Usage: "our own MAVLink component id"},
			&cli.UintFlag{Name: "target-system", Value: 1},
			&cli.UintFlag{Name: "target-component", Value: 1},
			&cli.DurationFlag{Name: "timeout", Value: ftp.DefaultTimeout},
			&cli.IntFlag{Name: "retries", Value: ftp.DefaultRetries},
			&cli.BoolFlag{Name: "debug"},
		},
		Commands: []*cli.Command{
			getCmd(),
			putCmd(),
			lsCmd(),
			mkdirCmd(),
			rmdirCmd(),
			rmCmd(),
			mvCmd(),
			crc32CheckCmd(),
			resetCmd(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatalf("mavftp: %v", err)
	}
}

func newClient(c *cli.Context) (*ftp.Client, func(), error) {
	if c.Bool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	opts := []ftp.Option{
		ftp.WithTargetSystem(uint8(c.Uint("target-system"))),
		ftp.WithTargetComponent(uint8(c.Uint("target-component"))),
		ftp.WithOwnIDs(uint8(c.Uint("system-id")), uint8(c.Uint("component-id"))),
		ftp.WithRetries(c.Int("retries")),
		ftp.WithTimeout(c.Duration("timeout")),
		ftp.WithLogger(ftp.NewLogrusLogger(logrus.StandardLogger(), uint8(c.Uint("target-system")), uint8(c.Uint("target-component")))),
	}
	if cfgPath := c.String("config"); cfgPath != "" {
		cfg, err := ftp.LoadConfig(cfgPath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(cfg.Options(), opts...)
	}

	transport, err := mavlink.DialUDP(c.String("local"), c.String("remote"), uint8(c.Uint("system-id")), uint8(c.Uint("component-id")))
	if err != nil {
		return nil, nil, err
	}
	go func() {
		if err := transport.Listen(); err != nil {
			logrus.Debugf("udp listener stopped: %v", err)
		}
	}()

	client := ftp.NewClient(transport, transport, ftp.NewRealTimer(), ftp.OSFilesystem{}, opts...)
	return client, func() { transport.Close() }, nil
}

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "download a remote file",
		ArgsUsage: "<remote-path> <local-folder>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: mavftp get <remote-path> <local-folder>", 1)
			}
			client, closeFn, err := newClient(c)
			if err != nil {
				return err
			}
			defer closeFn()
			return client.Download(c.Args().Get(0), c.Args().Get(1), printProgress)
		},
	}
}

func putCmd() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "upload a local file",
		ArgsUsage: "<local-path> <remote-folder>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: mavftp put <local-path> <remote-folder>", 1)
			}
			client, closeFn, err := newClient(c)
			if err != nil {
				return err
			}
			defer closeFn()
			return client.Upload(c.Args().Get(0), c.Args().Get(1), printProgress)
		},
	}
}

func lsCmd() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list a remote directory",
		ArgsUsage: "<remote-path>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: mavftp ls <remote-path>", 1)
			}
			client, closeFn, err := newClient(c)
			if err != nil {
				return err
			}
			defer closeFn()
			entries, err := client.ListDirectory(c.Args().Get(0))
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Println(e)
			}
			return nil
		},
	}
}

func mkdirCmd() *cli.Command {
	return simplePathCmd("mkdir", "create a remote directory", func(client *ftp.Client, path string) error {
		return client.CreateDirectory(path)
	})
}

func rmdirCmd() *cli.Command {
	return simplePathCmd("rmdir", "remove a remote directory", func(client *ftp.Client, path string) error {
		return client.RemoveDirectory(path)
	})
}

func rmCmd() *cli.Command {
	return simplePathCmd("rm", "remove a remote file", func(client *ftp.Client, path string) error {
		return client.RemoveFile(path)
	})
}

func mvCmd() *cli.Command {
	return &cli.Command{
		Name:      "mv",
		Usage:     "rename a remote path",
		ArgsUsage: "<from> <to>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: mavftp mv <from> <to>", 1)
			}
			client, closeFn, err := newClient(c)
			if err != nil {
				return err
			}
			defer closeFn()
			return client.Rename(c.Args().Get(0), c.Args().Get(1))
		},
	}
}

func crc32CheckCmd() *cli.Command {
	return &cli.Command{
		Name:      "crc32check",
		Usage:     "compare a local file's CRC32 against a remote file's",
		ArgsUsage: "<local-path> <remote-path>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: mavftp crc32check <local-path> <remote-path>", 1)
			}
			client, closeFn, err := newClient(c)
			if err != nil {
				return err
			}
			defer closeFn()
			identical, err := client.AreFilesIdentical(c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			fmt.Println(identical)
			return nil
		},
	}
}

func resetCmd() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "reset the server's session state",
		Action: func(c *cli.Context) error {
			client, closeFn, err := newClient(c)
			if err != nil {
				return err
			}
			defer closeFn()
			return client.Reset()
		},
	}
}

func simplePathCmd(name, usage string, run func(*ftp.Client, string) error) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<remote-path>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit(fmt.Sprintf("usage: mavftp %s <remote-path>", name), 1)
			}
			client, closeFn, err := newClient(c)
			if err != nil {
				return err
			}
			defer closeFn()
			return run(client, c.Args().Get(0))
		},
	}
}

func printProgress(p ftp.ProgressData) {
	if p.TotalBytes == 0 {
		return
	}
	pct := p.BytesTransferred * 100 / p.TotalBytes
	fmt.Printf("\r%s %3d%%", strings.Repeat(".", int(pct/5)), pct)
	if p.BytesTransferred >= p.TotalBytes {
		fmt.Println()
	}
}
