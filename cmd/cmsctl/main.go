// Command cmsctl queries a Strapi CMS from the command line.
//
//	cmsctl shared
//	cmsctl get articles --filter slug:eq:hello --populate '*'
//	cmsctl get services --all --page-size 50
//	cmsctl query services --filter isActive:eq:true --sort order:asc
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return 0
}
