package entity

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

func (s *Screenshot) MIMEType() string {
	return "image/" + s.Format
}

func (s *Screenshot) ToBlob() *Blob {
	return &Blob{MIMEType: s.MIMEType(), Data: s.Data}
}
