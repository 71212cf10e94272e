//go:build wireinject
// +build wireinject

package wire

import (
	"io"

	"github.com/google/wire"

	"github.com/sevigo/md2poui/internal/config"
	"github.com/sevigo/md2poui/internal/converter"
)

func initializeConverter(src Source, dest Destination, opts *config.Options, logOut io.Writer) (*converter.Converter, error) {
	wire.Build(ConverterSet)
	return &converter.Converter{}, nil
}
