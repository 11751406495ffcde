// Package yamlcfg loads validation scripts written in YAML into the same
// config.Model as the HCL loader. String values are HCL templates, so
// "Q7${each.value}" and "${expand_labels("r:1-3")}" work as in HCL scripts.
package yamlcfg
