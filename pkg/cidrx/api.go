package cidrx

func NewOptions(options Options) *Options {
	return &options
}
