package shell

var (
	noticeMissingName = Notice{
		Title:       "Missing Information",
		Description: "Please enter at least your name to generate a portfolio.",
		Variant:     VariantDestructive,
	}
	noticeGenerated = Notice{
		Title:       "Portfolio Generated!",
		Description: "Your portfolio has been successfully generated.",
		Variant:     VariantDefault,
	}
	noticeDownloaded = Notice{
		Title:       "Portfolio Downloaded!",
		Description: "Your portfolio has been saved as an HTML file.",
		Variant:     VariantDefault,
	}
)

func failureNotice(title string, err error) Notice {
	return Notice{Title: title, Description: err.Error(), Variant: VariantDestructive}
}
