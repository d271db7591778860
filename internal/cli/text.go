package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vamsha/pkg/family"
)

// translateCommand creates the translate command, which writes a name or
// phrase in a language's script.
func (c *CLI) translateCommand() *cobra.Command {
	var lang, spouse string

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Write a name in a regional script",
		Long: `Translate asks the text service to write a name or phrase in the script of
the chosen language. Without an API key, or when the service fails, the
input is printed unchanged.

With --spouse, both names are translated concurrently.`,
		Example: `  vamsha translate Ram --lang Hindi
  vamsha translate "Lav Kumar" --spouse Sita --lang ta`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTranslate(cmd.Context(), strings.Join(args, " "), spouse, lang)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "target language name or code (default from config)")
	cmd.Flags().StringVar(&spouse, "spouse", "", "spouse name to translate alongside")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)

	return cmd
}

func (c *CLI) runTranslate(ctx context.Context, text, spouse, langFlag string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	lang, err := language(langFlag, cfg)
	if err != nil {
		return err
	}
	client := c.newTextClient(ctx, cfg)

	spin := newSpinner(ctx, fmt.Sprintf("Translating into %s...", lang))
	spin.Start()
	pair := client.TranslatePair(ctx, text, spouse, lang)
	if spin.Cancelled() {
		spin.Stop()
		return ctx.Err()
	}
	if client.Available() {
		spin.StopWithSuccess(fmt.Sprintf("Translated into %s", lang))
	} else {
		spin.Stop()
		printWarning("No API key configured; showing the input")
	}
	printKeyValue(text, StyleRegional.Render(pair.Name))
	if spouse != "" {
		printKeyValue(spouse, StyleRegional.Render(pair.Spouse))
	}
	return nil
}

// storyCommand creates the story command, which writes a short narrative
// of a family tree.
func (c *CLI) storyCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "story [file]",
		Short: "Write a short poetic summary of a family",
		Long: `Story sends the names and relations of every member to the text service and
prints a short narrative in the chosen language. Dates, photos and
regional names are not sent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runStory(cmd.Context(), input, lang)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "narrative language name or code (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)

	return cmd
}

func (c *CLI) runStory(ctx context.Context, input, langFlag string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	lang, err := language(langFlag, cfg)
	if err != nil {
		return err
	}
	members, err := loadMembers(input)
	if err != nil {
		return err
	}
	client := c.newTextClient(ctx, cfg)

	spin := newSpinner(ctx, fmt.Sprintf("Writing the family story in %s...", lang))
	spin.Start()
	story := client.Narrate(ctx, members, lang)
	if spin.Cancelled() {
		spin.Stop()
		return ctx.Err()
	}
	if story == "" {
		spin.StopWithError("The text service returned no story")
		return nil
	}
	spin.Stop()
	fmt.Fprintln(stdout, StyleTitle.Render("Family Legacy"))
	fmt.Fprintln(stdout, story)
	return nil
}

// languagesCommand lists the supported languages.
func (c *CLI) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			for _, lang := range family.Languages() {
				name := string(lang)
				if lang == cfg.Lang() {
					name = StyleHighlight.Render(name + " *")
				}
				printKeyValue(lang.Code(), name)
			}
			printNextStep("Translate a name", "vamsha translate Ram --lang ta")
			return nil
		},
	}
}

func languageNames() []string {
	langs := family.Languages()
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return out
}
