package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerbaras/guya/pkg/integrations"
	"github.com/kerbaras/guya/pkg/services"
)

var exportCmd = &cobra.Command{
	Use:   "export <book> <chapter>",
	Short: "Export a chapter to EPUB or PDF",
	Long: `Download every page of a chapter and write it to an EPUB or PDF file.

Pages are fitted to the device screen following the scaling preference.
The release of the preferred group is exported unless --group picks one.

Examples:
  guya export kaguya-wants-to-be-confessed-to 21
  guya export kaguya-wants-to-be-confessed-to 21.5 --group 3 --device kobo-clara --grayscale`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		listDevices, _ := cmd.Flags().GetBool("list-devices")
		if listDevices {
			printDeviceList()
			return
		}
		if len(args) != 2 {
			cobra.CheckErr(fmt.Errorf("book and chapter are required (use --list-devices to see supported devices)"))
		}

		group, _ := cmd.Flags().GetString("group")
		device, _ := cmd.Flags().GetString("device")
		grayscale, _ := cmd.Flags().GetBool("grayscale")
		format, _ := cmd.Flags().GetString("format")

		viewport, ok := integrations.Viewports[device]
		if !ok {
			cobra.CheckErr(fmt.Errorf("unknown device: %s. Use --list-devices to see available options", device))
		}

		c := mustController()
		defer closeController(c)

		chapter, err := parseChapter(args[1])
		cobra.CheckErr(err)
		book, err := c.Catalog.Book(cmd.Context(), args[0])
		cobra.CheckErr(err)

		cfg := c.Config
		if format == "" {
			format = cfg.ExportFormat
		}
		newWriter, err := integrations.WriterFactory(format, cfg.ExportDir)
		cobra.CheckErr(err)

		exporter := services.NewExporter(c.Images, c.Links, c.Prefs, newWriter,
			services.ExporterOptions{
				Concurrency: cfg.ExportConcurrency,
				RPS:         cfg.ExportRPS,
				Viewport:    viewport,
				Grayscale:   grayscale,
			}, c.Log)

		finished := make(chan struct{})
		printed := make(chan struct{})
		go func() {
			defer close(printed)
			for {
				select {
				case progress := <-exporter.Progress():
					printProgress(progress)
				case <-finished:
					// flush what is still buffered
					for {
						select {
						case progress := <-exporter.Progress():
							printProgress(progress)
						default:
							return
						}
					}
				}
			}
		}()

		fmt.Printf("📥 Exporting %s chapter %s for %s...\n", book.Title, args[1], viewport.Name)
		path, err := exporter.ExportChapter(cmd.Context(), book, chapter, group)
		close(finished)
		<-printed
		if err != nil {
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}

		fmt.Printf("📖 %s created: %s\n", strings.ToUpper(format), path)
	},
}

func init() {
	exportCmd.Flags().StringP("group", "g", "", "Group whose release to export")
	exportCmd.Flags().StringP("device", "d", integrations.DefaultViewport, "Device screen to fit pages to")
	exportCmd.Flags().Bool("grayscale", false, "Convert pages to grayscale")
	exportCmd.Flags().StringP("format", "f", "", "Output format: epub or pdf (default from GUYA_EXPORT_FORMAT)")
	exportCmd.Flags().Bool("list-devices", false, "List the supported devices")
}

func printDeviceList() {
	names := make([]string, 0, len(integrations.Viewports))
	for name := range integrations.Viewports {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Println("📱 Supported devices:")
	for _, name := range names {
		v := integrations.Viewports[name]
		fmt.Printf("  %-20s %s (%dx%d)\n", name, v.Name, v.Width, v.Height)
	}
	fmt.Printf("\n  default: %s\n", integrations.DefaultViewport)
}

func printProgress(p services.ExportProgress) {
	switch p.Status {
	case services.StatusDownloading, services.StatusProcessing:
		fmt.Printf("  Chapter %s [%s]: %s %d/%d pages\n", p.Chapter, p.Group, p.Status, p.CurrentPage, p.TotalPages)
	}
}
