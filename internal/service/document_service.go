package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"

	"github.com/REINA-08/autamedica-reboot-deploy/internal/domain/entity"
	"github.com/REINA-08/autamedica-reboot-deploy/pkg/timepolicy"
)

// DocumentArtifact is a generated binary document (currently the PDF
// consult summary).
type DocumentArtifact struct {
	Filename string
	MIMEType string
	Content  []byte
}

// ConsultSummaryOptions carries optional inputs. A malformed Logo never
// aborts generation; the image is simply omitted.
type ConsultSummaryOptions struct {
	Logo []byte
}

// DocumentService produces the PDF consult summary for an appointment.
type DocumentService struct {
	log *logrus.Logger
}

func NewDocumentService(log *logrus.Logger) *DocumentService {
	return &DocumentService{log: log}
}

// ConsultSummary renders the summary document. The returned bytes always
// start with the PDF magic; the suggested filename is
// "consulta_<appointmentID>.pdf".
func (s *DocumentService) ConsultSummary(appointment *entity.Appointment, opts ConsultSummaryOptions) (*DocumentArtifact, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if img, format := decodeOptionalImage(opts.Logo); img != nil {
		name := "logo." + format
		pdf.RegisterImageOptionsReader(name,
			gofpdf.ImageOptions{ImageType: strings.ToUpper(format)},
			bytes.NewReader(opts.Logo))
		if pdf.Err() {
			// Tolerated degradation: drop the image, keep the document.
			s.log.Warnf("Failed to embed logo, omitting it: %+v", pdf.Error())
			pdf = gofpdf.New("P", "mm", "A4", "")
			tr = pdf.UnicodeTranslatorFromDescriptor("")
			pdf.AddPage()
		} else {
			pdf.ImageOptions(name, 10, 10, 30, 0, false,
				gofpdf.ImageOptions{ImageType: strings.ToUpper(format)}, 0, "")
			pdf.Ln(20)
		}
	} else if len(opts.Logo) > 0 {
		s.log.Warnf("Invalid logo image for appointment %s, omitting it", appointment.ID)
	}

	loc := timepolicy.Location()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Resumen de consulta"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado el %s", time.Now().In(loc).Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
	pdf.Ln(6)
	pdf.SetTextColor(31, 41, 55)

	rows := [][2]string{
		{"Cita", appointment.ID},
		{"Paciente", appointment.Patient.FullName},
		{"Médico", appointment.Doctor.FullName},
		{"Especialidad", appointment.Doctor.Specialty},
		{"Inicio", appointment.StartsAt.In(loc).Format("02/01/2006 15:04")},
		{"Fin", appointment.EndsAt.In(loc).Format("02/01/2006 15:04")},
		{"Estado", string(appointment.Status)},
	}

	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 8, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	if appointment.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, tr("Notas de la consulta"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(appointment.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate consult summary: %w", err)
	}

	return &DocumentArtifact{
		Filename: fmt.Sprintf("consulta_%s.pdf", appointment.ID),
		MIMEType: "application/pdf",
		Content:  buf.Bytes(),
	}, nil
}

// decodeOptionalImage validates optional image bytes before handing them to
// the PDF engine. Returns nil config on anything unusable.
func decodeOptionalImage(data []byte) (*image.Config, string) {
	if len(data) == 0 {
		return nil, ""
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ""
	}
	if format != "png" && format != "jpeg" {
		return nil, ""
	}
	return &cfg, format
}
