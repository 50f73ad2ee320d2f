package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hubspot/hubspot"
)

var (
	requestParams []string
	requestSets   []string
	requestBody   string
	requestRaw    bool
)

var requestCmd = &cobra.Command{
	Use:   "request METHOD TEMPLATE",
	Short: "Send a request to any endpoint",
	Long: `Send an authenticated request. Path placeholders such as :owner_id are
filled from --param values; the rest become query parameters.

  hubspot request GET /owners/v2/owners/:owner_id --param owner_id=42
  hubspot request POST /contacts/v1/contact --set properties.0.property=email --set properties.0.value=a@b.c`,
	Args: cobra.ExactArgs(2),
	RunE: runRequest,
}

func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().StringArrayVarP(&requestParams, "param", "p", nil, "parameter as key=value, ranges as key=begin..end (repeatable)")
	requestCmd.Flags().StringArrayVar(&requestSets, "set", nil, "set a JSON body field as path=value (repeatable)")
	requestCmd.Flags().StringVar(&requestBody, "body", "", "file containing the JSON body ('-' for stdin)")
	requestCmd.Flags().BoolVar(&requestRaw, "raw", false, "print the raw response instead of parsed JSON (POST only)")
}

func runRequest(cmd *cobra.Command, args []string) error {
	c, err := requireConnection()
	if err != nil {
		return err
	}

	method := strings.ToUpper(args[0])
	template := args[1]

	params, err := parseParams(requestParams)
	if err != nil {
		return err
	}

	body, err := readBody(cmd.InOrStdin(), requestBody)
	if err != nil {
		return err
	}
	body, err = buildBody(body, requestSets)
	if err != nil {
		return err
	}

	var payload any
	if len(body) > 0 {
		payload = body
	}
	req := hubspot.Request{Params: params, Body: payload}
	ctx := cmd.Context()
	p := newPrinter(cmd.OutOrStdout())

	switch method {
	case http.MethodGet:
		result, err := c.GetJSON(ctx, template, params)
		if err != nil {
			return err
		}
		return p.print(result.Value(), nil)
	case http.MethodPost:
		if requestRaw {
			resp, err := c.PostRaw(ctx, template, req)
			if err != nil {
				return err
			}
			return printRaw(cmd, resp)
		}
		result, err := c.PostJSON(ctx, template, req)
		if err != nil {
			return err
		}
		return p.print(result.Value(), nil)
	case http.MethodPut:
		result, err := c.PutJSON(ctx, template, req)
		if err != nil {
			return err
		}
		return p.print(result.Value(), nil)
	case http.MethodDelete:
		resp, err := c.DeleteJSON(ctx, template, params)
		if err != nil {
			return err
		}
		return printRaw(cmd, resp)
	default:
		return fmt.Errorf("unsupported method %q (use GET, POST, PUT or DELETE)", args[0])
	}
}

func readBody(in io.Reader, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read body from stdin: %w", err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		return data, nil
	}
}

func printRaw(cmd *cobra.Command, resp *hubspot.Response) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Status: %d\n%s\n", resp.StatusCode, resp.Body)
	return err
}
