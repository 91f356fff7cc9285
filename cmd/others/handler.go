package others

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projecteru2/preload/config"
	"github.com/projecteru2/preload/version"
)

type Handler struct {
	ConfProvider func() *config.Config
}

func (h Handler) Version(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
	return err
}
