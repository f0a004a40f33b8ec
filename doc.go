/*
Package ancestree grows binary decision trees that predict the ancestry
of an individual from the genetic variants it carries.

Trees are grown with the ID3 algorithm: starting from the whole
population, every node is split on the variant that yields the highest
information gain about the ancestry labels, into the subpopulation with
the variant and the one without it, until nodes are pure, variants run
out or no variant is informative.

The population itself is never accessed directly. Label counts for any
path of splits are requested from a CountProvider, which may be backed
by memory, a database or a remote service.
*/
package ancestree
