package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"

	"github.com/daimatz/classpatch/pkg/agent"
	"github.com/daimatz/classpatch/pkg/classfile"
	"github.com/daimatz/classpatch/pkg/jarfile"
	"github.com/daimatz/classpatch/pkg/patch"
)

const usage = `classpatch neutralises RemoteClassLoader$ClassLoaderProxy.fetchJar
(SECURITY-3430 / CVE-2024-43044) in older Jenkins releases by patching bytecode.

Usage:
    classpatch <source> <target>   patch a .class file, or the proxy class inside a remoting .jar
    classpatch dump <source>       print the constant pool of a .class file or remoting .jar
`

func main() {
	log.SetHandler(cli.New(os.Stderr))
	log.SetLevel(agent.LogLevelFromEnv())
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	switch {
	case len(args) == 2 && args[0] == "dump":
		return dump(args[1], stdout, stderr)
	case len(args) == 2:
		return patchFile(args[0], args[1], stdout, stderr)
	default:
		fmt.Fprint(stderr, usage)
		return 1
	}
}

// readClass returns the class bytes at path, pulling the proxy class out of
// the archive when path is a jar.
func readClass(path string) ([]byte, error) {
	if strings.HasSuffix(path, ".jar") {
		return jarfile.ReadEntry(path, jarfile.ClassEntryName(agent.DefaultClassName))
	}
	return os.ReadFile(path)
}

func patchFile(source, target string, stdout, stderr io.Writer) int {
	ctx := log.WithField("source", source)

	original, err := readClass(source)
	if err != nil {
		ctx.WithError(err).Error("reading source")
		return 1
	}

	p := patch.New()
	res, err := p.Apply(original)
	if err != nil {
		ctx.WithError(err).Error("patching")
		color.New(color.FgRed).Fprintf(stderr, "Failed to transform %s. Is it a RemoteClassLoader$ClassLoaderProxy.class?\n", source)
		return 1
	}

	if err := writeFileAtomic(target, res.Data); err != nil {
		ctx.WithError(err).WithField("target", target).Error("writing target")
		return 1
	}
	ctx.WithFields(log.Fields{"target": target, "offset": res.Offset}).Debug("wrote patched class")
	color.New(color.FgGreen).Fprintf(stdout, "patched %q at offset %d: %s -> %s\n",
		p.Target, res.Offset, source, target)
	return 0
}

// writeFileAtomic replaces path with data, leaving any existing file intact
// on failure.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".classpatch-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func dump(source string, stdout, stderr io.Writer) int {
	buf, err := readClass(source)
	if err != nil {
		log.WithField("source", source).WithError(err).Error("reading source")
		return 1
	}

	tagColor := color.New(color.FgCyan).SprintFunc()
	h, err := classfile.Walk(buf, classfile.DefaultMaxVersion, func(e classfile.Entry) bool {
		if e.Tag == classfile.TagUtf8 {
			fmt.Fprintf(stdout, "#%-5d %-20s @%-6d %q\n", e.Index, tagColor(classfile.TagName(e.Tag)), e.Offset, e.Text)
		} else {
			fmt.Fprintf(stdout, "#%-5d %-20s @%-6d\n", e.Index, tagColor(classfile.TagName(e.Tag)), e.Offset)
		}
		return true
	})
	if err != nil {
		log.WithField("source", source).WithError(err).Error("walking constant pool")
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "version %d.%d, %d constant pool slots\n", h.MajorVersion, h.MinorVersion, max(int(h.ConstantPoolCount)-1, 0))
	return 0
}
