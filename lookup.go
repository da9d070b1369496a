package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rzvngherman/OneDrive-REST-API/internal/config"
	"github.com/rzvngherman/OneDrive-REST-API/internal/lookup"
	"github.com/rzvngherman/OneDrive-REST-API/internal/server"
)

// errLookupFailed signals a lookup that produced an error response. The
// response is printed before this is returned, so main only sets the exit code.
var errLookupFailed = errors.New("lookup failed")

var (
	flagAllFields bool
	flagToken     string
)

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <path> <file-name>",
		Short: "Resolve one file to its download link",
		Long: `Resolve one file to its download link through the same pipeline the
HTTP relay uses, and print the result.

The access token comes from --token or ONEDRIVE_REST_API_TOKEN. A bare token
is sent as "Bearer <token>"; a value that already names a scheme is sent as is.`,
		Args: cobra.ExactArgs(2),
		RunE: runLookup,
	}

	cmd.Flags().BoolVar(&flagAllFields, "all-fields", false, "request every driveItem field instead of the link and name")
	cmd.Flags().StringVar(&flagToken, "token", "", "OneDrive access token")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	if resolvedCfg == nil {
		return errors.New("no configuration loaded")
	}

	logger := buildLogger(os.Stderr)
	svc := newService(resolvedCfg, logger)

	if svc.Mock() {
		statusf(flagQuiet, "Using mock transport (%s); results are canned.\n", resolvedCfg.MockSource)
	}

	token := flagToken
	if token == "" {
		token = os.Getenv(config.EnvToken)
	}

	resp := svc.Handle(cmd.Context(), lookup.Request{
		Path:          args[0],
		FileName:      args[1],
		ShowAllFields: flagAllFields,
	}, authorizationValue(token))

	out := cmd.OutOrStdout()

	var err error
	if flagJSON {
		err = printLookupJSON(out, resp)
	} else {
		err = printLookupText(out, resp)
	}

	if err != nil {
		return err
	}

	if resp.Error != nil {
		return fmt.Errorf("%w: %s", errLookupFailed, resp.Error.Code)
	}

	return nil
}

// authorizationValue turns a token into an Authorization header value.
// An empty token sends no header at all.
func authorizationValue(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return token
	}

	return "Bearer " + token
}

func printLookupJSON(w io.Writer, resp lookup.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(server.NewResponseBody(resp))
}

func printLookupText(w io.Writer, resp lookup.Response) error {
	rows := [][]string{{"mock", strconv.FormatBool(resp.MockMode)}}

	if resp.Result != nil {
		rows = append(rows,
			[]string{"download_url", resp.Result.DownloadURL},
			[]string{"file_name", resp.Result.FileName},
			[]string{"requested_path", resp.Result.RequestedPath},
		)
	}

	if resp.Error != nil {
		rows = append(rows,
			[]string{"code", resp.Error.Code},
			[]string{"message", resp.Error.Message},
		)

		if id := resp.Error.InnerError.RequestID; id != "" {
			rows = append(rows, []string{"request_id", id})
		}

		if d := resp.Error.InnerError.Date; d != "" {
			rows = append(rows, []string{"date", d})
		}
	}

	return printTable(w, []string{"FIELD", "VALUE"}, rows)
}
