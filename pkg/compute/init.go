package compute

func init() {
	registerUnary()
	registerBinary()
	registerRounding()
	registerCumulative()
	registerAggregate()
	registerExtension()
	registerCorrelation()
}
