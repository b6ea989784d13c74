package report

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const pointsPerMM = 72 / 25.4

// PageSize is a page's media box in millimetres.
type PageSize struct {
	Width  float64
	Height float64
}

// Info summarizes an encoded document.
type Info struct {
	PageCount int
	Pages     []PageSize
}

// Inspect parses and validates an encoded document.
func Inspect(rs io.ReadSeeker) (Info, error) {
	ctx, err := api.ReadValidateAndOptimize(rs, model.NewDefaultConfiguration())
	if err != nil {
		return Info{}, fmt.Errorf("report: read pdf: %w", err)
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return Info{}, fmt.Errorf("report: page dimensions: %w", err)
	}
	info := Info{PageCount: ctx.PageCount, Pages: make([]PageSize, 0, len(dims))}
	for _, dim := range dims {
		info.Pages = append(info.Pages, PageSize{Width: dim.Width / pointsPerMM, Height: dim.Height / pointsPerMM})
	}
	return info, nil
}
