package sesam

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/alexiusacademia/strucconv/internal/concept"
)

// reader carries the state of one import.
type reader struct {
	m     *concept.Model
	units Units

	length   float64
	mass     float64
	pressure float64
	density  float64
}

// Import reads a Sesam concept XML export into m. Malformed numbers and
// unknown units abort the import; content the reader does not handle is
// logged and skipped. Exclusions are left to the caller.
func Import(r io.Reader, m *concept.Model) error {
	var root element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return fmt.Errorf("parsing Sesam XML: %w", err)
	}
	rd := &reader{m: m}
	if err := rd.run(&root); err != nil {
		return fmt.Errorf("importing Sesam model: %w", err)
	}
	return nil
}

// ImportFile is Import on a file.
func ImportFile(path string, m *concept.Model) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Import(f, m); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (rd *reader) run(root *element) error {
	model := root.find("model")
	if model == nil {
		return fmt.Errorf("document has no <model>")
	}
	rd.readAdministrative(root, model)

	var err error
	if rd.units, err = readUnits(model); err != nil {
		return err
	}
	if rd.length, err = rd.units.LengthFactor(); err != nil {
		return err
	}
	if rd.mass, err = rd.units.MassFactor(); err != nil {
		return err
	}
	if rd.pressure, err = rd.units.PressureFactor(); err != nil {
		return err
	}
	if rd.density, err = rd.units.DensityFactor(); err != nil {
		return err
	}

	domain := model.find("structure_domain")
	if domain == nil {
		return fmt.Errorf("model has no <structure_domain>")
	}
	props := domain.find("properties")
	if err := rd.readMaterials(props.find("materials")); err != nil {
		return err
	}
	if err := rd.readSections(props.find("sections")); err != nil {
		return err
	}
	if err := rd.readHydro(props.find("hydro_properties")); err != nil {
		return err
	}
	if err := rd.readStructures(domain.find("structures")); err != nil {
		return err
	}
	rd.readSets(domain.find("sets"))
	if err := rd.readEquipment(model); err != nil {
		return err
	}

	rd.m.Log.Info("Sesam model imported", logrus.Fields{
		"model":     rd.m.Origin.ModelName,
		"materials": rd.m.Materials.Len(),
		"sections":  rd.m.Sections.Len(),
		"beams":     rd.m.Beams.Len(),
		"supports":  rd.m.Supports.Len(),
		"sets":      rd.m.Sets.Len(),
		"equipment": rd.m.Equipment.Len(),
	})
	return nil
}

func (rd *reader) readAdministrative(root, model *element) {
	o := &rd.m.Origin
	o.ModelName = model.get("name")
	adm := root.find("administrative")
	if prog := adm.find("program"); prog != nil {
		o.Program, o.Version = prog.get("program"), prog.get("version")
	}
	if s := adm.find("session_info"); s != nil {
		o.User, o.Date = s.get("user"), s.get("date")
	}
}

func (rd *reader) warn(msg string, fields logrus.Fields) {
	rd.m.Log.Warn(msg, fields)
}
