package data_test

import (
	"os"
	"path/filepath"

	"business-analysis/internal/data"
	"business-analysis/internal/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog", func() {
	It("loads every record file in a directory", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "beta.csv"), []byte("revenue\n1\n2\n"), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "alpha.json"), []byte(`[{"revenue": 3}]`), 0o644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644)).To(Succeed())

		c := data.NewCatalog()
		n, err := c.LoadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
		Expect(c.Len()).To(Equal(2))

		list := c.List()
		Expect(list[0].ID).To(Equal("alpha"))
		Expect(list[1].ID).To(Equal("beta"))

		beta, ok := c.Get("beta")
		Expect(ok).To(BeTrue())
		Expect(beta.Series).To(HaveLen(2))
	})

	It("replaces a dataset added twice", func() {
		c := data.NewCatalog()
		c.Add("x", "", model.Series{{Period: "1"}})
		c.Add("x", "", model.Series{{Period: "1"}, {Period: "2"}})
		d, ok := c.Get("x")
		Expect(ok).To(BeTrue())
		Expect(d.Series).To(HaveLen(2))
		Expect(c.Len()).To(Equal(1))
	})

	It("wraps load failures with the dataset id", func() {
		c := data.NewCatalog()
		err := c.LoadFile("broken", filepath.Join(GinkgoT().TempDir(), "missing.csv"))
		Expect(err).To(MatchError(ContainSubstring("broken")))
	})
})
