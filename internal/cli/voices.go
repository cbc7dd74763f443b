package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lavi-Vu/toolTTS/internal/engine"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the voices and languages an engine offers",
	Args:  cobra.NoArgs,
	RunE:  runVoices,
}

func init() {
	rootCmd.AddCommand(voicesCmd)

	voicesCmd.Flags().
		StringP("engine", "e", "openai", "Synthesis engine (openai, gemini)")
	voicesCmd.Flags().
		StringP("api-key", "k", "", "Engine API key (or set OPENAI_API_KEY / GEMINI_API_KEY)")
}

func runVoices(cmd *cobra.Command, args []string) error {
	provider, _ := cmd.Flags().GetString("engine")
	apiKey, _ := cmd.Flags().GetString("api-key")

	apiKey = resolveAPIKey(apiKey, engine.Provider(provider))
	if apiKey == "" {
		return fmt.Errorf("API key is required: use --api-key or the engine's environment variable")
	}

	eng, err := engine.Factory(context.Background(), engine.Provider(provider), apiKey, engine.Options{})
	if err != nil {
		return err
	}
	if !eng.Available() {
		return fmt.Errorf("engine %q is not available", provider)
	}

	fmt.Printf("Voices for %s:\n", provider)
	for _, v := range eng.Voices() {
		fmt.Printf("  %-10s %-10s %-8s %s\n", v.ID, v.Name, v.Gender, v.Language)
	}

	fmt.Println("Languages:")
	for _, lang := range eng.Languages() {
		fmt.Printf("  %s\n", lang)
	}

	return nil
}
